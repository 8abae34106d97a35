package config

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/embedded"
	"github.com/decker502/zombie-defense/pkg/types"
	"gopkg.in/yaml.v3"
)

// TowerArchetype 防御塔种类配置
type TowerArchetype struct {
	Name            string           `yaml:"name"`
	Cost            int              `yaml:"cost"`
	Range           float64          `yaml:"range"`
	Damage          float64          `yaml:"damage"`
	FireRate        int              `yaml:"fireRate"`
	Attack          types.AttackKind `yaml:"projType"`
	ProjectileSpeed float64          `yaml:"projSpeed"`
	AoE             float64          `yaml:"aoe"`
	ArmorPierce     bool             `yaml:"armorPierce"`
	Chain           int              `yaml:"chain"`
	RampSpeed       float64          `yaml:"rampSpeed"`      // 默认 1
	Slow            float64          `yaml:"slow"`           // 默认 1（不减速）
	BuffEfficiency  *float64         `yaml:"buffEfficiency"` // 默认 1

	// 辅助塔的基础加成
	BuffDamage float64 `yaml:"buffDamage"`
	BuffRange  float64 `yaml:"buffRange"`
	BuffPierce bool    `yaml:"buffPierce"`

	Upgrades []UpgradeTier `yaml:"upgrades"`
}

// UpgradeTier 升级层
// 所有属性字段都是稀疏覆盖：未填写的字段保留升级前的数值。
type UpgradeTier struct {
	Name string `yaml:"name"`
	Cost int    `yaml:"cost"`
	Desc string `yaml:"desc"`

	Damage      *float64 `yaml:"damage,omitempty"`
	Range       *float64 `yaml:"range,omitempty"`
	FireRate    *int     `yaml:"fireRate,omitempty"`
	AoE         *float64 `yaml:"aoe,omitempty"`
	ArmorPierce *bool    `yaml:"armorPierce,omitempty"`
	Chain       *int     `yaml:"chain,omitempty"`
	RampSpeed   *float64 `yaml:"rampSpeed,omitempty"`
	Slow        *float64 `yaml:"slow,omitempty"`
	BuffDamage  *float64 `yaml:"buffDamage,omitempty"`
	BuffRange   *float64 `yaml:"buffRange,omitempty"`
	BuffPierce  *bool    `yaml:"buffPierce,omitempty"`
}

// TowerTable 防御塔配置文件结构
type TowerTable struct {
	Towers map[types.TowerKind]TowerArchetype `yaml:"towers"`
}

// LoadTowerTable 从 YAML 文件加载防御塔配置
func LoadTowerTable(filepath string) (*TowerTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tower table %s: %w", filepath, err)
	}

	var table TowerTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse tower table YAML from %s: %w", filepath, err)
	}

	applyTowerDefaults(&table)

	if err := validateTowerTable(&table); err != nil {
		return nil, fmt.Errorf("invalid tower table in %s: %w", filepath, err)
	}

	return &table, nil
}

// applyTowerDefaults 填充可选字段的默认值
func applyTowerDefaults(table *TowerTable) {
	for kind, tower := range table.Towers {
		if tower.RampSpeed == 0 {
			tower.RampSpeed = 1
		}
		if tower.Slow == 0 {
			tower.Slow = 1
		}
		if tower.BuffEfficiency == nil {
			eff := 1.0
			tower.BuffEfficiency = &eff
		}
		if tower.Name == "" {
			tower.Name = string(kind)
		}
		table.Towers[kind] = tower
	}
}

// validateTowerTable 验证防御塔配置
func validateTowerTable(table *TowerTable) error {
	if len(table.Towers) == 0 {
		return fmt.Errorf("at least one tower kind is required")
	}

	for kind, tower := range table.Towers {
		if tower.Attack == types.AttackUnknown {
			return fmt.Errorf("tower %s: projType is required", kind)
		}
		if tower.Cost <= 0 {
			return fmt.Errorf("tower %s: cost must be positive, got %d", kind, tower.Cost)
		}
		if tower.Range <= 0 {
			return fmt.Errorf("tower %s: range must be positive, got %v", kind, tower.Range)
		}
		if tower.FireRate <= 0 {
			return fmt.Errorf("tower %s: fireRate must be positive, got %d", kind, tower.FireRate)
		}
		if tower.Attack.IsProjectile() && tower.ProjectileSpeed <= 0 {
			return fmt.Errorf("tower %s: projectile towers require projSpeed > 0", kind)
		}
		if tower.Attack == types.AttackLightning && tower.Chain < 1 {
			return fmt.Errorf("tower %s: lightning towers require chain >= 1", kind)
		}
		if tower.Attack == types.AttackAcid && tower.AoE <= 0 {
			return fmt.Errorf("tower %s: acid towers require aoe > 0", kind)
		}
		if *tower.BuffEfficiency < 0 {
			return fmt.Errorf("tower %s: buffEfficiency cannot be negative", kind)
		}
		for i, tier := range tower.Upgrades {
			if tier.Cost <= 0 {
				return fmt.Errorf("tower %s: upgrade %d cost must be positive, got %d", kind, i+1, tier.Cost)
			}
			if tier.FireRate != nil && *tier.FireRate <= 0 {
				return fmt.Errorf("tower %s: upgrade %d fireRate must be positive", kind, i+1)
			}
		}
	}

	return nil
}

// Get 获取指定种类的防御塔配置
func (t *TowerTable) Get(kind types.TowerKind) (*TowerArchetype, bool) {
	tower, ok := t.Towers[kind]
	if !ok {
		return nil, false
	}
	return &tower, true
}

// Efficiency 返回加成效率（已在加载时补齐默认值）
func (a *TowerArchetype) Efficiency() float64 {
	if a.BuffEfficiency == nil {
		return 1
	}
	return *a.BuffEfficiency
}

// MaxTier 可升级的层数
func (a *TowerArchetype) MaxTier() int {
	return len(a.Upgrades)
}

// NextUpgrade 返回当前层之后的下一次升级
// 已满级时返回 nil 和 false
func (a *TowerArchetype) NextUpgrade(tier int) (*UpgradeTier, bool) {
	if tier < 0 || tier >= len(a.Upgrades) {
		return nil, false
	}
	return &a.Upgrades[tier], true
}

// InvestedAt 升级到指定层时的累计投入（建造费 + 已应用的升级费用）
func (a *TowerArchetype) InvestedAt(tier int) int {
	total := a.Cost
	for i := 0; i < tier && i < len(a.Upgrades); i++ {
		total += a.Upgrades[i].Cost
	}
	return total
}
