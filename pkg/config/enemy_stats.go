package config

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/embedded"
	"github.com/decker502/zombie-defense/pkg/types"
	"gopkg.in/yaml.v3"
)

// EnemyArchetype 单个敌人种类的属性配置
type EnemyArchetype struct {
	HP     float64 `yaml:"hp"`     // 生命值
	Armor  float64 `yaml:"armor"`  // 固定减伤
	Speed  float64 `yaml:"speed"`  // 每帧移动距离
	Reward int     `yaml:"reward"` // 击败奖励
	Radius float64 `yaml:"radius"` // 碰撞半径
	Damage int     `yaml:"damage"` // 抵达终点扣除的生命

	Summon  *SummonBehavior `yaml:"summon,omitempty"`  // 周期召唤
	Regen   *RegenBehavior  `yaml:"regen,omitempty"`   // 脱战回复
	Aura    *AuraBehavior   `yaml:"aura,omitempty"`    // 强化光环
	OnDeath *DeathBehavior  `yaml:"onDeath,omitempty"` // 死亡结算
}

// SummonBehavior 召唤配置：计时超过 Interval 帧后在前进方向 Offset 处召唤一个仆从
type SummonBehavior struct {
	Interval int               `yaml:"interval"`
	Offset   float64           `yaml:"offset"`
	Minions  []types.EnemyKind `yaml:"minions"`
}

// RegenBehavior 回复配置：未受伤超过 Delay 帧后每帧回复 Amount
type RegenBehavior struct {
	Delay  int     `yaml:"delay"`
	Amount float64 `yaml:"amount"`
}

// AuraBehavior 光环配置：永久强化半径内尚未被强化的其他敌人
type AuraBehavior struct {
	Radius          float64 `yaml:"radius"`
	SpeedMultiplier float64 `yaml:"speedMultiplier"`
	HealthBonus     float64 `yaml:"healthBonus"`
	ArmorBonus      float64 `yaml:"armorBonus"`
}

// DeathBehavior 死亡时的附加效果
type DeathBehavior struct {
	Spawns []SpawnOnDeath `yaml:"spawns,omitempty"`
	Feed   *FeedBehavior  `yaml:"feed,omitempty"`
}

// SpawnOnDeath 死亡时在原地生成的敌人
type SpawnOnDeath struct {
	Kind  types.EnemyKind `yaml:"kind"`
	Count int             `yaml:"count"`
}

// FeedBehavior 死亡时为附近指定种类的敌人回血
type FeedBehavior struct {
	Kind   types.EnemyKind `yaml:"kind"`
	Radius float64         `yaml:"radius"`
	Heal   float64         `yaml:"heal"`
}

// EnemyTable 敌人配置文件结构
type EnemyTable struct {
	Enemies map[types.EnemyKind]EnemyArchetype `yaml:"enemies"`
}

// LoadEnemyTable 从 YAML 文件加载敌人配置
// 参数：
//
//	filepath - 配置文件路径（"data/" 前缀读取嵌入文件，其余读取磁盘）
//
// 返回：
//
//	*EnemyTable - 解析后的配置对象
//	error - 如果文件读取、解析或校验失败，返回错误信息
func LoadEnemyTable(filepath string) (*EnemyTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read enemy table %s: %w", filepath, err)
	}

	var table EnemyTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse enemy table YAML from %s: %w", filepath, err)
	}

	if err := validateEnemyTable(&table); err != nil {
		return nil, fmt.Errorf("invalid enemy table in %s: %w", filepath, err)
	}

	return &table, nil
}

// validateEnemyTable 验证敌人配置的完整性和合法性
// 跨种类引用（召唤、分裂、喂养）在 LoadContent 中统一校验
func validateEnemyTable(table *EnemyTable) error {
	if len(table.Enemies) == 0 {
		return fmt.Errorf("at least one enemy kind is required")
	}

	for kind, e := range table.Enemies {
		if e.HP <= 0 {
			return fmt.Errorf("enemy %s: hp must be positive, got %v", kind, e.HP)
		}
		if e.Armor < 0 {
			return fmt.Errorf("enemy %s: armor cannot be negative, got %v", kind, e.Armor)
		}
		if e.Speed <= 0 {
			return fmt.Errorf("enemy %s: speed must be positive, got %v", kind, e.Speed)
		}
		if e.Radius <= 0 {
			return fmt.Errorf("enemy %s: radius must be positive, got %v", kind, e.Radius)
		}
		if e.Reward < 0 || e.Damage < 0 {
			return fmt.Errorf("enemy %s: reward and damage cannot be negative", kind)
		}
		if e.Summon != nil {
			if e.Summon.Interval <= 0 {
				return fmt.Errorf("enemy %s: summon interval must be positive", kind)
			}
			if len(e.Summon.Minions) == 0 {
				return fmt.Errorf("enemy %s: summon requires at least one minion kind", kind)
			}
		}
		if e.Regen != nil && (e.Regen.Delay < 0 || e.Regen.Amount <= 0) {
			return fmt.Errorf("enemy %s: regen requires delay >= 0 and amount > 0", kind)
		}
		if e.Aura != nil && (e.Aura.Radius <= 0 || e.Aura.SpeedMultiplier <= 0) {
			return fmt.Errorf("enemy %s: aura requires positive radius and speed multiplier", kind)
		}
		if e.OnDeath != nil {
			for _, s := range e.OnDeath.Spawns {
				if s.Count <= 0 {
					return fmt.Errorf("enemy %s: death spawn of %s must have positive count", kind, s.Kind)
				}
			}
			if f := e.OnDeath.Feed; f != nil && (f.Radius <= 0 || f.Heal <= 0) {
				return fmt.Errorf("enemy %s: feed requires positive radius and heal", kind)
			}
		}
	}

	return nil
}

// Get 获取指定种类的敌人配置
// 如果种类不存在，返回 nil 和 false
func (t *EnemyTable) Get(kind types.EnemyKind) (*EnemyArchetype, bool) {
	e, ok := t.Enemies[kind]
	if !ok {
		return nil, false
	}
	return &e, true
}
