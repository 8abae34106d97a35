package systems

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// PuddleSystem 酸液池
//
// 每帧：寿命减一，覆盖到的存活敌人速度被设为 基础速度 × 减速系数，
// 中毒持续时间刷新为固定值，毒伤数值取该池。多个池子之间不叠加，
// 遍历顺序中最后一个覆盖到敌人的池子生效。寿命耗尽的池子在本帧生效后删除。
type PuddleSystem struct {
	state *game.SimulationState
}

// NewPuddleSystem 创建酸液池系统
func NewPuddleSystem(state *game.SimulationState) *PuddleSystem {
	return &PuddleSystem{state: state}
}

// Update 推进一帧
func (s *PuddleSystem) Update() {
	st := s.state
	em := st.EM
	enemies := ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em)

	for _, id := range ecs.GetEntitiesWith3[*components.PuddleComponent, *components.PositionComponent, *components.LifetimeComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		puddle, _ := ecs.GetComponent[*components.PuddleComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)

		life.Remaining--

		for _, eid := range enemies {
			if !st.IsEnemyAlive(eid) {
				continue
			}
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, eid)
			epos, _ := ecs.GetComponent[*components.PositionComponent](em, eid)
			if utils.Distance(pos.X, pos.Y, epos.X, epos.Y) >= puddle.Radius+enemy.Radius {
				continue
			}
			enemy.Speed = enemy.BaseSpeed * puddle.Slow
			if poison, ok := ecs.GetComponent[*components.PoisonComponent](em, eid); ok {
				poison.Remaining = st.Rules.PoisonRefresh
				poison.Damage = puddle.Damage
			}
		}

		if life.Remaining <= 0 {
			em.DestroyEntity(id)
		}
	}
}
