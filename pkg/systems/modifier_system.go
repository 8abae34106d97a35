package systems

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/game"
)

// ModifierSystem 每帧开始时清除临时修正
// 敌人速度回到基础速度（减速只在本帧生效），塔的加成累加器清零。
type ModifierSystem struct {
	state *game.SimulationState
}

// NewModifierSystem 创建修正重置系统
func NewModifierSystem(state *game.SimulationState) *ModifierSystem {
	return &ModifierSystem{state: state}
}

// Update 重置全部临时修正
func (s *ModifierSystem) Update() {
	em := s.state.EM
	for _, id := range ecs.GetEntitiesWith1[*components.EnemyComponent](em) {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
		enemy.Speed = enemy.BaseSpeed
	}
	ResetBuffs(s.state)
}

// ResetBuffs 清零所有塔的加成累加器
func ResetBuffs(s *game.SimulationState) {
	for _, id := range ecs.GetEntitiesWith1[*components.BuffComponent](s.EM) {
		buff, _ := ecs.GetComponent[*components.BuffComponent](s.EM, id)
		buff.Reset()
	}
}
