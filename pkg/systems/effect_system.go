package systems

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/game"
)

// EffectSystem 管理视觉提示的生命周期
type EffectSystem struct {
	state *game.SimulationState
}

// NewEffectSystem 创建视觉提示生命周期系统
func NewEffectSystem(state *game.SimulationState) *EffectSystem {
	return &EffectSystem{state: state}
}

// Update 寿命减一，耗尽后标记删除
func (s *EffectSystem) Update() {
	em := s.state.EM
	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.LifetimeComponent](em) {
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
		lifetime.Remaining--
		if lifetime.Remaining <= 0 {
			em.DestroyEntity(id)
		}
	}
}

// CullSystem 帧末清理
// 结算本帧被防御塔击败但尚未结算的敌人，然后删除所有标记的实体。
type CullSystem struct {
	state *game.SimulationState
}

// NewCullSystem 创建清理系统
func NewCullSystem(state *game.SimulationState) *CullSystem {
	return &CullSystem{state: state}
}

// Update 结算并清理
func (s *CullSystem) Update() {
	st := s.state
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](st.EM) {
		if st.EM.IsMarkedForDestroy(id) {
			continue
		}
		health, _ := ecs.GetComponent[*components.HealthComponent](st.EM, id)
		if health.Current <= 0 {
			ResolveDeath(st, id)
		}
	}
	st.EM.RemoveMarkedEntities()
}
