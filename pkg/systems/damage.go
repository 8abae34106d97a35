// Package systems 实现逐帧推进的各个阶段
//
// 每个系统只负责一个阶段，持有同一个 *game.SimulationState。
// 阶段顺序由 simulation 包的 Step 固定：
// 重置临时修正 → 波次调度 → 酸液池与敌人 → 防御塔 → 弹道与视觉提示 → 清理。
package systems

import (
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/game"
)

// EffectiveStats 一次攻击实际使用的属性
type EffectiveStats struct {
	Range      float64
	Damage     float64
	BuffDamage float64 // 按加成效率折算并取整后的加成伤害
	Pierce     bool
}

// ComputeEffectiveStats 由基础属性与本帧收到的加成计算有效属性
// 纯函数：不修改输入，每次使用时重新计算。
func ComputeEffectiveStats(stats *components.TowerStats, buff *components.BuffComponent) EffectiveStats {
	eff := EffectiveStats{
		Range:  stats.Range,
		Damage: stats.Damage,
		Pierce: stats.ArmorPierce,
	}
	if buff == nil {
		return eff
	}
	eff.BuffDamage = math.Floor(buff.Damage * stats.BuffEfficiency)
	eff.Damage += eff.BuffDamage
	eff.Range += math.Floor(buff.Range * stats.BuffEfficiency)
	eff.Pierce = eff.Pierce || buff.Pierce
	return eff
}

// MitigatedDamage 护甲减伤
// 穿甲或无护甲时为原始伤害，否则为 max(1, amount - armor)
func MitigatedDamage(amount, armor float64, piercing bool) float64 {
	if piercing || armor <= 0 {
		return amount
	}
	return math.Max(1, amount-armor)
}

// ApplyDamage 对敌人造成一次攻击
//
// 护盾有剩余层数时消耗一层并返回 0，生命值不变。
// 攻击后生命值不大于零且来源有效时记录击杀来源，后来的致命攻击覆盖先前的来源。
//
// 返回实际扣除的生命值。
func ApplyDamage(s *game.SimulationState, id ecs.EntityID, amount float64, piercing bool, source ecs.EntityID) float64 {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
	if !ok {
		return 0
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.EM, id)
	if !ok {
		return 0
	}

	// 任何一次攻击都会打断脱战回复
	if regen, ok := ecs.GetComponent[*components.RegenComponent](s.EM, id); ok {
		regen.Timer = 0
	}

	if shield, ok := ecs.GetComponent[*components.ShieldComponent](s.EM, id); ok && shield.Active() {
		shield.Charges--
		return 0
	}

	armor := 0.0
	if a, ok := ecs.GetComponent[*components.ArmorComponent](s.EM, id); ok {
		armor = a.Value
	}
	dmg := MitigatedDamage(amount, armor, piercing)

	health.Current -= dmg
	if health.Current <= 0 && source != ecs.InvalidEntity {
		enemy.KilledBy = source
	}
	return dmg
}
