package components

import (
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// EnemyComponent 敌人的核心状态
//
// 状态流转：行进 → 传送（可选）→ 行进 → 抵达终点 | 被击败。
// 抵达与击败都是终态，由清理阶段结算经济效果后删除实体。
type EnemyComponent struct {
	Kind types.EnemyKind

	Radius       float64
	Reward       int // 击败奖励
	BreachDamage int // 抵达终点扣除的生命

	BaseSpeed float64 // 基础速度（可被辅助单位永久提升）
	Speed     float64 // 本帧速度，每帧开始重置为 BaseSpeed

	// PathIndex 最近一次到达或经过的路径点序号，也是塔的首要索敌依据
	PathIndex int

	Arrived  bool
	Defeated bool // 击败已结算，防止重复发放奖励

	// KilledBy 最后一次致命攻击的来源塔，无来源（毒伤等）时为 ecs.InvalidEntity
	KilledBy ecs.EntityID

	TeleportCooldown int
	Enhanced         bool // 已被辅助单位强化（一次性）
}

// PoisonComponent 中毒状态
// 持续时间与伤害节拍相互独立：刷新持续时间不会打乱伤害节奏。
type PoisonComponent struct {
	Remaining int     // 剩余中毒帧数
	TickTimer int     // 距离下一次毒伤的帧数
	Damage    float64 // 每次毒伤数值
}

// SummonerComponent 周期召唤仆从
type SummonerComponent struct {
	Interval int
	Offset   float64 // 仆从出现在前进方向上的距离
	Minions  []types.EnemyKind
	Timer    int
}

// RegenComponent 脱战回复
// Timer 在每次受到伤害时清零，超过 Delay 后每帧回复 Amount。
type RegenComponent struct {
	Delay  int
	Amount float64
	Timer  int
}

// AuraComponent 辅助型敌人的强化光环
type AuraComponent struct {
	Radius          float64
	SpeedMultiplier float64
	HealthBonus     float64 // 最大生命值百分比加成（0.2 表示 +20%）
	ArmorBonus      float64
}
