package systems

import (
	"testing"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
)

var testContent *config.Content

func loadTestContent(t *testing.T) *config.Content {
	t.Helper()
	if testContent != nil {
		return testContent
	}
	content, err := config.LoadContent("../../data")
	if err != nil {
		t.Fatalf("LoadContent failed: %v", err)
	}
	testContent = content
	return content
}

// straightLevel 一条从 (0,360) 到 (1280,360) 的直线路径，没有护盾规则
func straightLevel() *config.LevelConfig {
	return &config.LevelConfig{
		ID:            99,
		Name:          "test",
		StartingMoney: 1000,
		Waves:         3,
		Towers:        []types.TowerKind{types.TowerRifleman, types.TowerTrumpeter},
		Path:          []config.Point{{X: 0, Y: 360}, {X: 640, Y: 360}, {X: 1280, Y: 360}},
		ClearBonus:    config.ClearBonus{Base: 100, PerWave: 15},
		WaveRules: []config.WaveRule{{
			From:   1,
			Repeat: 1,
			Groups: []config.WaveGroup{{Kind: types.EnemyWalker, Count: 5, Every: 1, Interval: 1}},
		}},
	}
}

// newTestState 创建使用直线路径的模拟状态，并记录全部事件
func newTestState(t *testing.T) (*game.SimulationState, *event.Recorder) {
	t.Helper()
	recorder := &event.Recorder{}
	dispatcher := event.NewDispatcher()
	dispatcher.SubscribeAll(recorder)

	s, err := game.NewSimulationState(loadTestContent(t), 1, 42, dispatcher)
	if err != nil {
		t.Fatalf("NewSimulationState failed: %v", err)
	}
	s.Level = straightLevel()
	s.Money = s.Level.StartingMoney
	return s, recorder
}

// addEnemy 在指定位置放置一个无护盾的敌人
func addEnemy(t *testing.T, s *game.SimulationState, kind types.EnemyKind, x, y float64, pathIndex int) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemyEntity(s.EM, s.Content.Enemies, kind, x, y, pathIndex, 0)
	if err != nil {
		t.Fatalf("NewEnemyEntity failed: %v", err)
	}
	return id
}

// addDummy 放置一个生命值与护甲可控的敌人
func addDummy(t *testing.T, s *game.SimulationState, x, y float64, pathIndex int, hp, armor float64) ecs.EntityID {
	t.Helper()
	id := addEnemy(t, s, types.EnemyWalker, x, y, pathIndex)
	health, _ := ecs.GetComponent[*components.HealthComponent](s.EM, id)
	health.Current, health.Max = hp, hp
	a, _ := ecs.GetComponent[*components.ArmorComponent](s.EM, id)
	a.Value = armor
	return id
}

func addTower(t *testing.T, s *game.SimulationState, kind types.TowerKind, x, y float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewTowerEntity(s.EM, s.Content.Towers, kind, x, y)
	if err != nil {
		t.Fatalf("NewTowerEntity failed: %v", err)
	}
	return id
}

func hpOf(s *game.SimulationState, id ecs.EntityID) float64 {
	health, _ := ecs.GetComponent[*components.HealthComponent](s.EM, id)
	return health.Current
}

func towerOf(s *game.SimulationState, id ecs.EntityID) *components.TowerComponent {
	tower, _ := ecs.GetComponent[*components.TowerComponent](s.EM, id)
	return tower
}

func enemyOf(s *game.SimulationState, id ecs.EntityID) *components.EnemyComponent {
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
	return enemy
}

func posOf(s *game.SimulationState, id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
	return pos
}

func countWith[T any](s *game.SimulationState) int {
	return len(ecs.GetEntitiesWith1[T](s.EM))
}
