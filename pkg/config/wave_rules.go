package config

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/types"
)

// WaveGroup 一组同种敌人
// 数量随波次增长：Count + floor((wave - Offset) × Scale / Every)
type WaveGroup struct {
	Kind     types.EnemyKind `yaml:"kind"`
	Count    int             `yaml:"count"`
	Scale    int             `yaml:"scale,omitempty"`
	Every    int             `yaml:"every,omitempty"`  // 默认 1
	Offset   int             `yaml:"offset,omitempty"` // 增长起算波次
	Interval int             `yaml:"interval"`         // 生成间隔（帧）
}

// WaveRule 覆盖 [From, To] 波次的组成规则，To 为 0 表示不设上限
type WaveRule struct {
	From    int         `yaml:"from"`
	To      int         `yaml:"to"`
	Repeat  int         `yaml:"repeat,omitempty"` // 整组重复次数，默认 1
	Message string      `yaml:"message,omitempty"`
	Groups  []WaveGroup `yaml:"groups"`
}

// SpawnGroup 展开后的敌人组
type SpawnGroup struct {
	Kind     types.EnemyKind
	Count    int
	Interval int
}

// SpawnEntry 生成队列中的一项
type SpawnEntry struct {
	Kind     types.EnemyKind
	Interval int
}

// WavePlan 某一波的组成
type WavePlan struct {
	Wave    int
	Message string
	Groups  []SpawnGroup
}

func applyWaveRuleDefaults(rule *WaveRule) {
	if rule.Repeat == 0 {
		rule.Repeat = 1
	}
	if rule.From == 0 {
		rule.From = 1
	}
	for i := range rule.Groups {
		if rule.Groups[i].Every == 0 {
			rule.Groups[i].Every = 1
		}
	}
}

// validateWaveRules 校验规则合法且覆盖 1..waves 的每一波
func validateWaveRules(rules []WaveRule, waves int) error {
	if len(rules) == 0 {
		return fmt.Errorf("at least one wave rule is required")
	}
	for i, rule := range rules {
		if rule.To != 0 && rule.To < rule.From {
			return fmt.Errorf("wave rule %d: to (%d) is before from (%d)", i, rule.To, rule.From)
		}
		if len(rule.Groups) == 0 {
			return fmt.Errorf("wave rule %d: at least one group is required", i)
		}
		if rule.Repeat < 1 {
			return fmt.Errorf("wave rule %d: repeat must be at least 1", i)
		}
		for j, g := range rule.Groups {
			if g.Kind == "" {
				return fmt.Errorf("wave rule %d group %d: kind is required", i, j)
			}
			if g.Interval < 0 {
				return fmt.Errorf("wave rule %d group %d: interval cannot be negative", i, j)
			}
			if g.Every < 1 {
				return fmt.Errorf("wave rule %d group %d: every must be at least 1", i, j)
			}
		}
	}
	for wave := 1; wave <= waves; wave++ {
		if findWaveRule(rules, wave) == nil {
			return fmt.Errorf("no wave rule covers wave %d", wave)
		}
	}
	return nil
}

func findWaveRule(rules []WaveRule, wave int) *WaveRule {
	for i := range rules {
		r := &rules[i]
		if wave >= r.From && (r.To == 0 || wave <= r.To) {
			return r
		}
	}
	return nil
}

// CountAt 计算该组在第 wave 波的敌人数量
func (g *WaveGroup) CountAt(wave int) int {
	every := g.Every
	if every < 1 {
		every = 1
	}
	growth := wave - g.Offset
	if growth < 0 {
		growth = 0
	}
	count := g.Count + growth*g.Scale/every
	if count < 0 {
		return 0
	}
	return count
}

// WavePlan 计算第 wave 波的组成
// 第一条覆盖该波次的规则生效；没有规则覆盖时返回 false
func (l *LevelConfig) WavePlan(wave int) (WavePlan, bool) {
	rule := findWaveRule(l.WaveRules, wave)
	if rule == nil {
		return WavePlan{}, false
	}

	plan := WavePlan{
		Wave:    wave,
		Message: rule.Message,
		Groups:  make([]SpawnGroup, 0, len(rule.Groups)*rule.Repeat),
	}
	if plan.Message == "" {
		plan.Message = fmt.Sprintf("Wave %d", wave)
	}

	for r := 0; r < rule.Repeat; r++ {
		for i := range rule.Groups {
			g := &rule.Groups[i]
			plan.Groups = append(plan.Groups, SpawnGroup{
				Kind:     g.Kind,
				Count:    g.CountAt(wave),
				Interval: g.Interval,
			})
		}
	}
	return plan, true
}

// Queue 按组顺序展开为扁平的生成队列
func (p WavePlan) Queue() []SpawnEntry {
	total := 0
	for _, g := range p.Groups {
		total += g.Count
	}
	queue := make([]SpawnEntry, 0, total)
	for _, g := range p.Groups {
		for i := 0; i < g.Count; i++ {
			queue = append(queue, SpawnEntry{Kind: g.Kind, Interval: g.Interval})
		}
	}
	return queue
}
