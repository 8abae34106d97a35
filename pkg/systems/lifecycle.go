package systems

import (
	"fmt"
	"log"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// SpawnEnemy 生成敌人并按当前波次掷护盾
// 波次生成、召唤和死亡分裂都走这里，护盾规则对它们一视同仁。
func SpawnEnemy(s *game.SimulationState, kind types.EnemyKind, x, y float64, pathIndex int) (ecs.EntityID, error) {
	charges := entities.RollShieldCharges(s.Level, s.Wave, s.RNG)
	id, err := entities.NewEnemyEntity(s.EM, s.Content.Enemies, kind, x, y, pathIndex, charges)
	if err != nil {
		return 0, fmt.Errorf("failed to spawn enemy: %w", err)
	}
	s.Emit(event.EnemySpawned, event.EnemySpawnedData{
		Entity:        id,
		Kind:          kind,
		X:             x,
		Y:             y,
		ShieldCharges: charges,
	})
	return id, nil
}

// ResolveArrival 敌人抵达终点：扣除生命并删除
// 生命耗尽时进入失败状态
func ResolveArrival(s *game.SimulationState, id ecs.EntityID) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
	if !ok || s.EM.IsMarkedForDestroy(id) {
		return
	}
	enemy.Arrived = true
	s.Lives -= enemy.BreachDamage

	s.Emit(event.EnemyArrived, event.EnemyArrivedData{
		Entity: id,
		Kind:   enemy.Kind,
		Damage: enemy.BreachDamage,
		Lives:  s.Lives,
	})
	s.Notice(event.NoticeError, "-%d Lives!", enemy.BreachDamage)
	s.EM.DestroyEntity(id)

	if s.Lives <= 0 && !s.GameOver {
		s.GameOver = true
		log.Printf("[Lifecycle] Game over on level %d wave %d", s.Level.ID, s.Wave)
		s.Emit(event.GameOver, event.GameOverData{Level: s.Level.ID, Wave: s.Wave})
	}
}

// ResolveDeath 结算被击败的敌人
//
// 发放奖励、记录击杀、生成分裂体、为附近同伴回血，然后标记删除。
// 同一个敌人只结算一次。
func ResolveDeath(s *game.SimulationState, id ecs.EntityID) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
	if !ok || enemy.Defeated || enemy.Arrived || s.EM.IsMarkedForDestroy(id) {
		return
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
	enemy.Defeated = true

	s.Money += enemy.Reward

	// 来源塔可能已被出售
	killer := enemy.KilledBy
	if killer != ecs.InvalidEntity {
		if tower, ok := ecs.GetComponent[*components.TowerComponent](s.EM, killer); ok && !s.EM.IsMarkedForDestroy(killer) {
			tower.Kills++
		} else {
			killer = ecs.InvalidEntity
		}
	}

	s.Emit(event.EnemyDefeated, event.EnemyDefeatedData{
		Entity: id,
		Kind:   enemy.Kind,
		X:      pos.X,
		Y:      pos.Y,
		Reward: enemy.Reward,
		Killer: killer,
	})

	entities.NewCircleEffect(s.EM, components.EffectSplatter, pos.X, pos.Y, enemy.Radius*1.5, s.Rules.SplatterLife)

	if archetype, ok := s.Content.Enemies.Get(enemy.Kind); ok && archetype.OnDeath != nil {
		for _, spawn := range archetype.OnDeath.Spawns {
			for i := 0; i < spawn.Count; i++ {
				if _, err := SpawnEnemy(s, spawn.Kind, pos.X, pos.Y, enemy.PathIndex); err != nil {
					log.Printf("[Lifecycle] Warning: %v", err)
				}
			}
		}
		if feed := archetype.OnDeath.Feed; feed != nil {
			feedNearby(s, id, pos, feed.Kind, feed.Radius, feed.Heal)
		}
	}

	s.EM.DestroyEntity(id)
}

// feedNearby 为半径内指定种类的存活敌人回血，不超过最大生命值
func feedNearby(s *game.SimulationState, source ecs.EntityID, at *components.PositionComponent, kind types.EnemyKind, radius, heal float64) {
	for _, other := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.EM) {
		if other == source || !s.IsEnemyAlive(other) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, other)
		if enemy.Kind != kind {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, other)
		if utils.Distance(at.X, at.Y, pos.X, pos.Y) >= radius {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](s.EM, other)
		health.Current = min(health.Current+heal, health.Max)
	}
}
