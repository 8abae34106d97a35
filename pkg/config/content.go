package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/decker502/zombie-defense/pkg/types"
)

// 内容表文件名
const (
	EnemiesFile = "enemies.yaml"
	TowersFile  = "towers.yaml"
	LevelsFile  = "levels.yaml"
)

// Content 模拟核心消费的全部只读内容表
type Content struct {
	Enemies *EnemyTable
	Towers  *TowerTable
	Levels  *LevelTable
}

// Rules 返回全局模拟常量
func (c *Content) Rules() *SimulationRules {
	return &c.Levels.Rules
}

// LoadContent 从目录加载三张内容表并做跨表引用校验
// 参数：
//   - dir: 内容目录，"data" 读取嵌入文件，其余路径读取磁盘
//
// 返回：
//   - *Content: 校验通过的内容表
//   - error: 任一表加载失败或引用了未知种类
func LoadContent(dir string) (*Content, error) {
	enemies, err := LoadEnemyTable(filepath.Join(dir, EnemiesFile))
	if err != nil {
		return nil, err
	}
	towers, err := LoadTowerTable(filepath.Join(dir, TowersFile))
	if err != nil {
		return nil, err
	}
	levels, err := LoadLevelTable(filepath.Join(dir, LevelsFile))
	if err != nil {
		return nil, err
	}

	content := &Content{Enemies: enemies, Towers: towers, Levels: levels}
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content in %s: %w", dir, err)
	}

	log.Printf("[Config] Loaded %d enemy kinds, %d tower kinds, %d levels from %s",
		len(enemies.Enemies), len(towers.Towers), len(levels.Levels), dir)
	return content, nil
}

// Validate 校验跨表引用：关卡引用的塔、波次与行为引用的敌人必须存在
func (c *Content) Validate() error {
	if c.Enemies == nil || c.Towers == nil || c.Levels == nil {
		return fmt.Errorf("content tables must all be loaded")
	}

	enemyExists := func(kind types.EnemyKind) bool {
		_, ok := c.Enemies.Enemies[kind]
		return ok
	}

	for kind, e := range c.Enemies.Enemies {
		if e.Summon != nil {
			for _, m := range e.Summon.Minions {
				if !enemyExists(m) {
					return fmt.Errorf("enemy %s: unknown minion kind %q", kind, m)
				}
			}
		}
		if e.OnDeath != nil {
			for _, s := range e.OnDeath.Spawns {
				if !enemyExists(s.Kind) {
					return fmt.Errorf("enemy %s: unknown death spawn kind %q", kind, s.Kind)
				}
			}
			if e.OnDeath.Feed != nil && !enemyExists(e.OnDeath.Feed.Kind) {
				return fmt.Errorf("enemy %s: unknown feed kind %q", kind, e.OnDeath.Feed.Kind)
			}
		}
	}

	for _, level := range c.Levels.Levels {
		for _, tk := range level.Towers {
			if _, ok := c.Towers.Towers[tk]; !ok {
				return fmt.Errorf("level %d: unknown tower kind %q", level.ID, tk)
			}
		}
		for i, rule := range level.WaveRules {
			for _, g := range rule.Groups {
				if !enemyExists(g.Kind) {
					return fmt.Errorf("level %d wave rule %d: unknown enemy kind %q", level.ID, i, g.Kind)
				}
			}
		}
	}
	return nil
}
