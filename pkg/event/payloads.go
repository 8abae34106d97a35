package event

import (
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// EnemySpawnedData 敌人生成
type EnemySpawnedData struct {
	Entity        ecs.EntityID
	Kind          types.EnemyKind
	X, Y          float64
	ShieldCharges int
}

// EnemyDefeatedData 敌人被击败
// Killer 为致命一击的来源塔，毒伤等无来源击杀时为 ecs.InvalidEntity
type EnemyDefeatedData struct {
	Entity ecs.EntityID
	Kind   types.EnemyKind
	X, Y   float64
	Reward int
	Killer ecs.EntityID
}

// EnemyArrivedData 敌人抵达终点
type EnemyArrivedData struct {
	Entity ecs.EntityID
	Kind   types.EnemyKind
	Damage int
	Lives  int // 扣除后的剩余生命
}

// WaveStartedData 波次开始
type WaveStartedData struct {
	Wave    int
	Message string
	Spawns  int
}

// WaveClearedData 波次清空
type WaveClearedData struct {
	Wave  int
	Bonus int
}

// VictoryData 关卡胜利
type VictoryData struct {
	Level int
	Wave  int
}

// GameOverData 生命耗尽
type GameOverData struct {
	Level int
	Wave  int
}

// TowerPlacedData 建造防御塔
type TowerPlacedData struct {
	Entity ecs.EntityID
	Kind   types.TowerKind
	X, Y   float64
	Cost   int
}

// TowerFiredData 防御塔开火（音效与视觉提示使用）
type TowerFiredData struct {
	Entity ecs.EntityID
	Kind   types.TowerKind
	Attack types.AttackKind
	Target ecs.EntityID
}

// TowerChargingData 轨道炮进入充能窗口
type TowerChargingData struct {
	Entity ecs.EntityID
}

// TowerUpgradedData 防御塔升级
type TowerUpgradedData struct {
	Entity   ecs.EntityID
	Kind     types.TowerKind
	Tier     int
	TierName string
	Cost     int
}

// TowerSoldData 防御塔出售
type TowerSoldData struct {
	Entity ecs.EntityID
	Kind   types.TowerKind
	Refund int
}

// NoticeLevel 提示级别
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// NoticeData 面向玩家的提示文本
type NoticeData struct {
	Text  string
	Level NoticeLevel
}
