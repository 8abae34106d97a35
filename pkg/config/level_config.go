package config

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/embedded"
	"github.com/decker502/zombie-defense/pkg/types"
	"gopkg.in/yaml.v3"
)

// Point 路径点
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Teleporter 传送门：从 Entry 号路径点跳到 Exit 号路径点
// Entry→Exit 之间的线段是"缺口"，不参与放置距离判定。
type Teleporter struct {
	Entry int `yaml:"entry"`
	Exit  int `yaml:"exit"`
}

// ClearBonus 波次清空奖励：Base + PerWave × 波次，Overrides 按波次覆盖
type ClearBonus struct {
	Base      int         `yaml:"base"`
	PerWave   int         `yaml:"perWave"`
	Overrides map[int]int `yaml:"overrides,omitempty"`
}

// LevelConfig 单个关卡配置
type LevelConfig struct {
	ID            int               `yaml:"id"`
	Name          string            `yaml:"name"`
	StartingMoney int               `yaml:"startingMoney"`
	Waves         int               `yaml:"waves"`
	Towers        []types.TowerKind `yaml:"towers"` // 本关可建造的塔
	Path          []Point           `yaml:"path"`
	Teleporters   []Teleporter      `yaml:"teleporters,omitempty"`
	ClearBonus    ClearBonus        `yaml:"clearBonus"`
	WaveRules     []WaveRule        `yaml:"waveRules"`
	Shields       []ShieldRule      `yaml:"shields,omitempty"`
}

// LevelTable 关卡配置文件结构
type LevelTable struct {
	Rules  SimulationRules `yaml:"rules"`
	Levels []LevelConfig   `yaml:"levels"`
}

// LoadLevelTable 从 YAML 文件加载关卡配置
func LoadLevelTable(filepath string) (*LevelTable, error) {
	data, err := embedded.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read level table %s: %w", filepath, err)
	}

	var table LevelTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse level table YAML from %s: %w", filepath, err)
	}

	applyDefaults(&table)

	if err := validateLevelTable(&table); err != nil {
		return nil, fmt.Errorf("invalid level table in %s: %w", filepath, err)
	}

	return &table, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(table *LevelTable) {
	applyRuleDefaults(&table.Rules)

	for i := range table.Levels {
		level := &table.Levels[i]
		if level.ClearBonus.Base == 0 && level.ClearBonus.PerWave == 0 {
			level.ClearBonus.Base = 100
			level.ClearBonus.PerWave = 15
		}
		for j := range level.WaveRules {
			applyWaveRuleDefaults(&level.WaveRules[j])
		}
		for j := range level.Shields {
			if level.Shields[j].Charges == 0 {
				level.Shields[j].Charges = table.Rules.DefaultShieldCharges
			}
		}
	}
}

// validateLevelTable 验证关卡配置
func validateLevelTable(table *LevelTable) error {
	if len(table.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}

	seen := make(map[int]bool, len(table.Levels))
	for i := range table.Levels {
		level := &table.Levels[i]
		if seen[level.ID] {
			return fmt.Errorf("duplicate level id %d", level.ID)
		}
		seen[level.ID] = true

		if err := validateLevel(level); err != nil {
			return fmt.Errorf("level %d: %w", level.ID, err)
		}
	}
	return nil
}

func validateLevel(level *LevelConfig) error {
	if len(level.Path) < 2 {
		return fmt.Errorf("path requires at least 2 points, got %d", len(level.Path))
	}
	if level.Waves < 1 {
		return fmt.Errorf("waves must be at least 1, got %d", level.Waves)
	}
	if level.StartingMoney < 0 {
		return fmt.Errorf("startingMoney cannot be negative")
	}
	if len(level.Towers) == 0 {
		return fmt.Errorf("at least one tower kind is required")
	}

	for _, tp := range level.Teleporters {
		if tp.Entry < 0 || tp.Exit >= len(level.Path) || tp.Entry >= tp.Exit {
			return fmt.Errorf("teleporter %d->%d out of path range", tp.Entry, tp.Exit)
		}
	}

	if err := validateWaveRules(level.WaveRules, level.Waves); err != nil {
		return err
	}
	return validateShieldRules(level.Shields)
}

// Level 按 ID 查找关卡
func (t *LevelTable) Level(id int) (*LevelConfig, bool) {
	for i := range t.Levels {
		if t.Levels[i].ID == id {
			return &t.Levels[i], true
		}
	}
	return nil, false
}

// AllowsTower 本关是否允许建造该种类的塔
func (l *LevelConfig) AllowsTower(kind types.TowerKind) bool {
	for _, k := range l.Towers {
		if k == kind {
			return true
		}
	}
	return false
}

// IsTeleportGap 第 segment 段（Path[segment]→Path[segment+1]）是否为传送缺口
func (l *LevelConfig) IsTeleportGap(segment int) bool {
	for _, tp := range l.Teleporters {
		if tp.Entry == segment {
			return true
		}
	}
	return false
}

// WaveBonus 第 wave 波清空时的奖励
func (l *LevelConfig) WaveBonus(wave int) int {
	if bonus, ok := l.ClearBonus.Overrides[wave]; ok {
		return bonus
	}
	return l.ClearBonus.Base + l.ClearBonus.PerWave*wave
}
