package entities

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// NewEnemyEntity 创建敌人实体
//
// 参数:
//   - em: 实体管理器
//   - table: 敌人配置表
//   - kind: 敌人种类
//   - x, y: 生成坐标（波次生成为路径起点，分裂与召唤为母体附近）
//   - pathIndex: 初始路径点序号
//   - shieldCharges: 护盾层数，0 表示无护盾
//
// 返回:
//   - ecs.EntityID: 创建的敌人实体ID
//   - error: 种类未配置时返回错误
func NewEnemyEntity(em *ecs.EntityManager, table *config.EnemyTable, kind types.EnemyKind, x, y float64, pathIndex, shieldCharges int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	archetype, ok := table.Get(kind)
	if !ok {
		return 0, fmt.Errorf("unknown enemy kind %q", kind)
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Kind:         kind,
		Radius:       archetype.Radius,
		Reward:       archetype.Reward,
		BreachDamage: archetype.Damage,
		BaseSpeed:    archetype.Speed,
		Speed:        archetype.Speed,
		PathIndex:    pathIndex,
		KilledBy:     ecs.InvalidEntity,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		Current: archetype.HP,
		Max:     archetype.HP,
	})
	ecs.AddComponent(em, id, &components.ArmorComponent{Value: archetype.Armor})
	ecs.AddComponent(em, id, &components.ShieldComponent{Charges: shieldCharges})
	ecs.AddComponent(em, id, &components.PoisonComponent{})

	// 行为组件按配置可选挂载
	if s := archetype.Summon; s != nil {
		minions := make([]types.EnemyKind, len(s.Minions))
		copy(minions, s.Minions)
		ecs.AddComponent(em, id, &components.SummonerComponent{
			Interval: s.Interval,
			Offset:   s.Offset,
			Minions:  minions,
		})
	}
	if r := archetype.Regen; r != nil {
		ecs.AddComponent(em, id, &components.RegenComponent{
			Delay:  r.Delay,
			Amount: r.Amount,
		})
	}
	if a := archetype.Aura; a != nil {
		ecs.AddComponent(em, id, &components.AuraComponent{
			Radius:          a.Radius,
			SpeedMultiplier: a.SpeedMultiplier,
			HealthBonus:     a.HealthBonus,
			ArmorBonus:      a.ArmorBonus,
		})
	}

	return id, nil
}

// RollShieldCharges 按关卡的护盾阶梯为新生成的敌人掷骰
//
// 没有生效规则时不消耗随机数。规则生效时先按基础概率判定，
// 成功后如有强化护盾配置，再掷一次决定是否替换为强化层数。
func RollShieldCharges(level *config.LevelConfig, wave int, rng *utils.PRNGService) int {
	rule := level.ShieldRuleFor(wave)
	if rule == nil {
		return 0
	}
	if !rng.Chance(rule.ChanceAt(wave)) {
		return 0
	}
	charges := rule.Charges
	if rule.Enhanced != nil && rng.Chance(rule.Enhanced.Chance) {
		charges = rule.Enhanced.Charges
	}
	return charges
}
