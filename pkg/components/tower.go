package components

import (
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// TowerStats 防御塔的当前属性
// 初始值来自塔型配置，每次升级按稀疏覆盖写入。
type TowerStats struct {
	Range           float64
	Damage          float64
	FireRate        int // 开火间隔（帧）
	AoE             float64
	ArmorPierce     bool
	Chain           int
	RampSpeed       float64
	Slow            float64
	BuffEfficiency  float64
	ProjectileSpeed float64

	// 仅辅助塔使用：向范围内其他塔提供的加成
	BuffDamage float64
	BuffRange  float64
	BuffPierce bool
}

// TowerComponent 防御塔状态
type TowerComponent struct {
	Kind   types.TowerKind
	Attack types.AttackKind
	Stats  TowerStats

	Tier       int // 已应用的升级层数
	Kills      int
	TotalSpent int

	Cooldown int
	Angle    float64

	// Target 本帧选中的目标，每帧重新计算
	Target     ecs.EntityID
	LastTarget ecs.EntityID
	RampTime   float64 // 光束持续聚焦同一目标的累计时间
	Charging   bool    // 轨道炮处于充能窗口
}

// BuffComponent 每帧由辅助塔重新计算的加成累加器
type BuffComponent struct {
	Damage float64
	Range  float64
	Pierce bool
}

// Reset 清零
func (b *BuffComponent) Reset() {
	b.Damage = 0
	b.Range = 0
	b.Pierce = false
}
