package components

import (
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// ProjectileComponent 飞行中的弹道
//
// 伤害、范围、穿甲和减速在发射时从塔的有效属性拍下快照，
// 之后的升级或加成变化不影响已经发射的弹道。
type ProjectileComponent struct {
	Attack types.AttackKind
	Source ecs.EntityID // 发射塔
	Target ecs.EntityID // 追踪目标，目标消失后只剩近炸逻辑

	Damage       float64
	AoE          float64
	Pierce       bool
	Slow         float64
	Speed        float64
	Radius       float64 // 火焰会逐帧扩大
	PoolDuration int     // 酸液池持续帧数

	Active bool
}

// PuddleComponent 酸液池
// 覆盖到的敌人每帧被减速并刷新中毒状态；多个池子不叠加，最后一个生效。
type PuddleComponent struct {
	Radius float64
	Damage float64
	Slow   float64
	Source ecs.EntityID
}
