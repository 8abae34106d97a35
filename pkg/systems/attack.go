package systems

import (
	"log"
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// Fire 按攻击类型结算一次开火
// 调用方保证 tower.Target 是本帧选中的存活敌人
func Fire(s *game.SimulationState, id ecs.EntityID, eff EffectiveStats) {
	tower, _ := ecs.GetComponent[*components.TowerComponent](s.EM, id)

	switch tower.Attack {
	case types.AttackRail:
		fireRail(s, id, tower, eff)
	case types.AttackBeam:
		fireBeam(s, id, tower, eff)
	case types.AttackLightning:
		ChainLightning(s, id, tower.Target, tower.Stats.Chain, tower.Stats.Damage, tower.Stats.ArmorPierce)
	case types.AttackBullet, types.AttackSniper, types.AttackBomb, types.AttackAcid, types.AttackFlame:
		launchProjectile(s, id, tower, eff)
	case types.AttackBuff, types.AttackUnknown:
		return
	}

	s.Emit(event.TowerFired, event.TowerFiredData{
		Entity: id,
		Kind:   tower.Kind,
		Attack: tower.Attack,
		Target: tower.Target,
	})
}

// fireRail 沿朝向发射到基础射程终点的瞬时光束
// 线段附近的所有存活敌人都受到穿甲伤害
func fireRail(s *game.SimulationState, id ecs.EntityID, tower *components.TowerComponent, eff EffectiveStats) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
	endX, endY := utils.PointAt(pos.X, pos.Y, tower.Angle, tower.Stats.Range)

	entities.NewLineEffect(s.EM, components.EffectRailBeam, pos.X, pos.Y, endX, endY, s.Rules.RailBeamLife)

	for _, eid := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.EM) {
		if !s.IsEnemyAlive(eid) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, eid)
		epos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, eid)
		if utils.DistToSegment(epos.X, epos.Y, pos.X, pos.Y, endX, endY) < enemy.Radius+s.Rules.RailHalfWidth {
			ApplyDamage(s, eid, eff.Damage, true, id)
		}
	}
}

// BeamDamage 光束伤害：基础伤害 × 2^(聚焦时间/周期) + 加成伤害
func BeamDamage(base, rampTime, period, buffDamage float64) float64 {
	return base*math.Pow(2, rampTime/period) + buffDamage
}

// fireBeam 只叠加加成伤害，穿甲取塔自身属性
func fireBeam(s *game.SimulationState, id ecs.EntityID, tower *components.TowerComponent, eff EffectiveStats) {
	dmg := BeamDamage(tower.Stats.Damage, tower.RampTime, s.Rules.BeamRampPeriod, eff.BuffDamage)
	ApplyDamage(s, tower.Target, dmg, tower.Stats.ArmorPierce, id)
}

// ChainLightning 连锁闪电
//
// 依次命中 chain 个敌人：第一个是 first，之后每次跳到距离上一个命中点最近、
// 尚未命中过的存活敌人（距离小于跳跃半径）。首次命中造成 damage，
// 之后每跳造成 damage × 衰减系数。没有可跳目标时提前结束。
// damage 与 piercing 取塔的基础属性，辅助塔加成不参与。
//
// 返回命中的敌人（按命中顺序）。
func ChainLightning(s *game.SimulationState, source, first ecs.EntityID, chain int, damage float64, piercing bool) []ecs.EntityID {
	em := s.EM
	hits := make([]ecs.EntityID, 0, chain)
	if chain <= 0 || !s.IsEnemyAlive(first) {
		return hits
	}

	fromX, fromY := 0.0, 0.0
	if pos, ok := ecs.GetComponent[*components.PositionComponent](em, source); ok {
		fromX, fromY = pos.X, pos.Y
	}

	visited := make(map[ecs.EntityID]bool, chain)
	current := first
	for len(hits) < chain && current != ecs.InvalidEntity {
		dmg := damage
		if len(hits) > 0 {
			dmg *= s.Rules.LightningFalloff
		}
		cpos, _ := ecs.GetComponent[*components.PositionComponent](em, current)

		ApplyDamage(s, current, dmg, piercing, source)
		visited[current] = true
		hits = append(hits, current)
		entities.NewLineEffect(em, components.EffectBolt, fromX, fromY, cpos.X, cpos.Y, s.Rules.BoltLife)

		fromX, fromY = cpos.X, cpos.Y
		current = nearestUnvisited(s, cpos.X, cpos.Y, s.Rules.LightningHopRadius, visited)
	}
	return hits
}

// nearestUnvisited 距离 (x, y) 严格小于 radius 的最近未命中存活敌人
func nearestUnvisited(s *game.SimulationState, x, y, radius float64, visited map[ecs.EntityID]bool) ecs.EntityID {
	next := ecs.InvalidEntity
	minDist := radius
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.EM) {
		if visited[id] || !s.IsEnemyAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		if d := utils.Distance(x, y, pos.X, pos.Y); d < minDist {
			minDist = d
			next = id
		}
	}
	return next
}

// launchProjectile 从炮口发射弹道，数值取开火瞬间的有效属性
func launchProjectile(s *game.SimulationState, id ecs.EntityID, tower *components.TowerComponent, eff EffectiveStats) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
	tpos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, tower.Target)
	mx, my := utils.PointAt(pos.X, pos.Y, tower.Angle, s.Rules.MuzzleOffset)

	_, err := entities.NewProjectileEntity(s.EM, s.Rules, entities.ProjectileSpawn{
		Attack:  tower.Attack,
		Source:  id,
		Target:  tower.Target,
		X:       mx,
		Y:       my,
		TargetX: tpos.X,
		TargetY: tpos.Y,
		Damage:  eff.Damage,
		AoE:     tower.Stats.AoE,
		Pierce:  eff.Pierce,
		Slow:    tower.Stats.Slow,
		Speed:   tower.Stats.ProjectileSpeed,
	})
	if err != nil {
		log.Printf("[TowerSystem] Warning: %v", err)
	}
}
