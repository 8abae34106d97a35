package systems

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// TowerSystem 防御塔索敌与开火
//
// 每帧先由辅助塔广播加成（累加器已在帧首清零），再推进其余塔。
// 辅助塔自身不索敌、不开火。
type TowerSystem struct {
	state *game.SimulationState
}

// NewTowerSystem 创建防御塔系统
func NewTowerSystem(state *game.SimulationState) *TowerSystem {
	return &TowerSystem{state: state}
}

// Update 推进所有防御塔一帧
func (s *TowerSystem) Update() {
	BroadcastBuffs(s.state)

	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.state.EM) {
		if s.state.EM.IsMarkedForDestroy(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.state.EM, id)
		if tower.Attack == types.AttackBuff {
			continue
		}
		s.Tick(id)
	}
}

// BroadcastBuffs 辅助塔向范围内的其他非辅助塔累加加成
// 调用前累加器应已清零（ResetBuffs），否则加成会叠加。
func BroadcastBuffs(s *game.SimulationState) {
	em := s.EM
	towers := ecs.GetEntitiesWith3[*components.TowerComponent, *components.PositionComponent, *components.BuffComponent](em)

	for _, sid := range towers {
		support, _ := ecs.GetComponent[*components.TowerComponent](em, sid)
		if support.Attack != types.AttackBuff || em.IsMarkedForDestroy(sid) {
			continue
		}
		spos, _ := ecs.GetComponent[*components.PositionComponent](em, sid)

		for _, tid := range towers {
			if tid == sid || em.IsMarkedForDestroy(tid) {
				continue
			}
			receiver, _ := ecs.GetComponent[*components.TowerComponent](em, tid)
			if receiver.Attack == types.AttackBuff {
				continue
			}
			tpos, _ := ecs.GetComponent[*components.PositionComponent](em, tid)
			if utils.Distance(spos.X, spos.Y, tpos.X, tpos.Y) > support.Stats.Range {
				continue
			}
			buff, _ := ecs.GetComponent[*components.BuffComponent](em, tid)
			buff.Damage += support.Stats.BuffDamage
			buff.Range += support.Stats.BuffRange
			buff.Pierce = buff.Pierce || support.Stats.BuffPierce
		}
	}
}

// RefreshBuffs 清零后重新广播，结果只取决于当前塔的布局
func RefreshBuffs(s *game.SimulationState) {
	ResetBuffs(s)
	BroadcastBuffs(s)
}

// SelectTarget 在 (x, y) 周围 radius 内选择目标
// 优先路径序号最大的敌人，序号相同时选择距离最近的。没有目标时返回 ecs.InvalidEntity。
func SelectTarget(s *game.SimulationState, x, y, radius float64) ecs.EntityID {
	best := ecs.InvalidEntity
	bestDist := radius + 10
	maxPathIndex := -1

	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.EM) {
		if !s.IsEnemyAlive(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		dist := utils.Distance(x, y, pos.X, pos.Y)
		if dist > radius {
			continue
		}
		if enemy.PathIndex > maxPathIndex || (enemy.PathIndex == maxPathIndex && dist < bestDist) {
			maxPathIndex = enemy.PathIndex
			bestDist = dist
			best = id
		}
	}
	return best
}

// Tick 推进单座塔一帧：冷却、索敌、瞄准、光束聚焦、开火
func (s *TowerSystem) Tick(id ecs.EntityID) {
	st := s.state
	em := st.EM
	tower, _ := ecs.GetComponent[*components.TowerComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	buff, _ := ecs.GetComponent[*components.BuffComponent](em, id)

	if tower.Cooldown > 0 {
		tower.Cooldown--
	}

	eff := ComputeEffectiveStats(&tower.Stats, buff)
	tower.Target = SelectTarget(st, pos.X, pos.Y, eff.Range)

	if tower.Target == ecs.InvalidEntity {
		tower.RampTime = 0
		tower.LastTarget = ecs.InvalidEntity
		tower.Charging = false
		return
	}
	tpos, _ := ecs.GetComponent[*components.PositionComponent](em, tower.Target)

	window := st.Rules.RailChargeWindow
	switch {
	case tower.Attack == types.AttackRail && tower.Cooldown > 0 && tower.Cooldown <= window:
		tower.Angle = utils.AngleTo(pos.X, pos.Y, tpos.X, tpos.Y)
		if tower.Cooldown == window {
			st.Emit(event.TowerCharging, event.TowerChargingData{Entity: id})
		}
		tower.Charging = true
	case tower.Cooldown <= 0 || tower.Attack == types.AttackBeam:
		tower.Angle = utils.AngleTo(pos.X, pos.Y, tpos.X, tpos.Y)
		tower.Charging = false
	}

	if tower.Attack == types.AttackBeam {
		if tower.Target == tower.LastTarget {
			tower.RampTime += tower.Stats.RampSpeed
		} else {
			tower.RampTime = 0
		}
		tower.LastTarget = tower.Target
	}

	if tower.Cooldown <= 0 {
		Fire(st, id, eff)
		tower.Cooldown = tower.Stats.FireRate
	}
}
