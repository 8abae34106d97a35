package entities

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// BaseStats 从塔型配置构造初始属性
func BaseStats(archetype *config.TowerArchetype) components.TowerStats {
	return components.TowerStats{
		Range:           archetype.Range,
		Damage:          archetype.Damage,
		FireRate:        archetype.FireRate,
		AoE:             archetype.AoE,
		ArmorPierce:     archetype.ArmorPierce,
		Chain:           archetype.Chain,
		RampSpeed:       archetype.RampSpeed,
		Slow:            archetype.Slow,
		BuffEfficiency:  archetype.Efficiency(),
		ProjectileSpeed: archetype.ProjectileSpeed,
		BuffDamage:      archetype.BuffDamage,
		BuffRange:       archetype.BuffRange,
		BuffPierce:      archetype.BuffPierce,
	}
}

// NewTowerEntity 创建防御塔实体
// 放置合法性与扣费由调用方负责，这里只构造实体。
//
// 参数:
//   - em: 实体管理器
//   - table: 防御塔配置表
//   - kind: 塔的种类
//   - x, y: 放置坐标
//
// 返回:
//   - ecs.EntityID: 创建的塔实体ID
//   - error: 种类未配置时返回错误
func NewTowerEntity(em *ecs.EntityManager, table *config.TowerTable, kind types.TowerKind, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	archetype, ok := table.Get(kind)
	if !ok {
		return 0, fmt.Errorf("unknown tower kind %q", kind)
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.TowerComponent{
		Kind:       kind,
		Attack:     archetype.Attack,
		Stats:      BaseStats(archetype),
		TotalSpent: archetype.Cost,
	})
	ecs.AddComponent(em, id, &components.BuffComponent{})

	return id, nil
}

// ApplyUpgradeTier 将升级层的稀疏覆盖写入塔的属性
// 只修改升级层中出现的字段，Tier 加一并累计投入。扣费由调用方负责。
func ApplyUpgradeTier(tower *components.TowerComponent, tier *config.UpgradeTier) {
	s := &tower.Stats
	if tier.Damage != nil {
		s.Damage = *tier.Damage
	}
	if tier.Range != nil {
		s.Range = *tier.Range
	}
	if tier.FireRate != nil {
		s.FireRate = *tier.FireRate
	}
	if tier.AoE != nil {
		s.AoE = *tier.AoE
	}
	if tier.ArmorPierce != nil {
		s.ArmorPierce = *tier.ArmorPierce
	}
	if tier.Chain != nil {
		s.Chain = *tier.Chain
	}
	if tier.RampSpeed != nil {
		s.RampSpeed = *tier.RampSpeed
	}
	if tier.Slow != nil {
		s.Slow = *tier.Slow
	}
	if tier.BuffDamage != nil {
		s.BuffDamage = *tier.BuffDamage
	}
	if tier.BuffRange != nil {
		s.BuffRange = *tier.BuffRange
	}
	if tier.BuffPierce != nil {
		s.BuffPierce = *tier.BuffPierce
	}

	tower.Tier++
	tower.TotalSpent += tier.Cost
}

// RestoreTier 依次应用前 tier 层升级（读档使用）
func RestoreTier(tower *components.TowerComponent, archetype *config.TowerArchetype, tier int) error {
	if tier > archetype.MaxTier() {
		return fmt.Errorf("tower %s: tier %d exceeds max tier %d", tower.Kind, tier, archetype.MaxTier())
	}
	for tower.Tier < tier {
		next, _ := archetype.NextUpgrade(tower.Tier)
		ApplyUpgradeTier(tower, next)
	}
	return nil
}
