package systems

import (
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// ProjectileSystem 弹道飞行与命中
// 职责：
// - 移动弹道；追踪类弹道每帧重新指向目标
// - 火焰扩张并灼烧覆盖到的敌人
// - 目标消失后炸弹与酸液转为近炸判定，其余弹道直线飞出场外
// - 命中结算：酸液池、范围伤害或单体伤害
type ProjectileSystem struct {
	state *game.SimulationState
}

// NewProjectileSystem 创建弹道系统
func NewProjectileSystem(state *game.SimulationState) *ProjectileSystem {
	return &ProjectileSystem{state: state}
}

// Update 推进所有弹道一帧
func (s *ProjectileSystem) Update() {
	em := s.state.EM
	for _, id := range ecs.GetEntitiesWith3[*components.ProjectileComponent, *components.PositionComponent, *components.VelocityComponent](em) {
		if em.IsMarkedForDestroy(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
		if proj.Active {
			s.advance(id, proj)
		}
		if !proj.Active {
			em.DestroyEntity(id)
		}
	}
}

func (s *ProjectileSystem) advance(id ecs.EntityID, proj *components.ProjectileComponent) {
	st := s.state
	em := st.EM
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)

	pos.X += vel.VX
	pos.Y += vel.VY

	if proj.Attack == types.AttackFlame {
		s.advanceFlame(proj, pos)
		return
	}

	if proj.Target != ecs.InvalidEntity && !st.IsEnemyAlive(proj.Target) {
		proj.Target = ecs.InvalidEntity
	}

	if proj.Target != ecs.InvalidEntity {
		tpos, _ := ecs.GetComponent[*components.PositionComponent](em, proj.Target)
		target, _ := ecs.GetComponent[*components.EnemyComponent](em, proj.Target)
		if proj.Attack.HomesOnTarget() {
			angle := math.Atan2(tpos.Y-pos.Y, tpos.X-pos.X)
			vel.VX = math.Cos(angle) * proj.Speed
			vel.VY = math.Sin(angle) * proj.Speed
		}
		if utils.Distance(pos.X, pos.Y, tpos.X, tpos.Y) < target.Radius+proj.Speed {
			s.hit(proj, pos, proj.Target)
		}
	} else if proj.Attack.HasProximityFallback() {
		if victim := s.proximityVictim(pos); victim != ecs.InvalidEntity {
			s.hit(proj, pos, victim)
			return
		}
	}

	if pos.X < 0 || pos.X > st.Rules.Width || pos.Y < 0 || pos.Y > st.Rules.Height {
		proj.Active = false
	}
}

// advanceFlame 火焰半径逐帧扩大，灼烧覆盖到的全部敌人后熄灭
func (s *ProjectileSystem) advanceFlame(proj *components.ProjectileComponent, pos *components.PositionComponent) {
	st := s.state
	proj.Radius += st.Rules.FlameGrowth

	for _, eid := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](st.EM) {
		if !st.IsEnemyAlive(eid) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](st.EM, eid)
		epos, _ := ecs.GetComponent[*components.PositionComponent](st.EM, eid)
		if utils.Distance(pos.X, pos.Y, epos.X, epos.Y) < proj.Radius+enemy.Radius {
			ApplyDamage(st, eid, proj.Damage, true, proj.Source)
			proj.Active = false
		}
	}

	if proj.Radius > st.Rules.FlameMaxRadius {
		proj.Active = false
	}
}

// proximityVictim 近炸判定：返回第一个进入触发距离的存活敌人
func (s *ProjectileSystem) proximityVictim(pos *components.PositionComponent) ecs.EntityID {
	st := s.state
	for _, eid := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](st.EM) {
		if !st.IsEnemyAlive(eid) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](st.EM, eid)
		epos, _ := ecs.GetComponent[*components.PositionComponent](st.EM, eid)
		if utils.Distance(pos.X, pos.Y, epos.X, epos.Y) < enemy.Radius+st.Rules.ProximitySlack {
			return eid
		}
	}
	return ecs.InvalidEntity
}

// hit 命中结算
func (s *ProjectileSystem) hit(proj *components.ProjectileComponent, pos *components.PositionComponent, direct ecs.EntityID) {
	st := s.state
	proj.Active = false

	switch {
	case proj.Attack == types.AttackAcid:
		entities.NewPuddleEntity(st.EM, pos.X, pos.Y, proj.AoE, proj.Damage, proj.Slow, proj.PoolDuration, proj.Source)
	case proj.AoE > 0:
		entities.NewCircleEffect(st.EM, components.EffectBlast, pos.X, pos.Y, proj.AoE, st.Rules.BlastLife)
		SplashDamage(st, pos.X, pos.Y, proj.AoE, proj.Damage, proj.Pierce, proj.Source)
	default:
		ApplyDamage(st, direct, proj.Damage, proj.Pierce, proj.Source)
	}
}

// SplashDamage 对 (x, y) 周围 area + 敌人半径 以内的全部存活敌人造成完整伤害，不随距离衰减
// 返回受到攻击的敌人数量
func SplashDamage(s *game.SimulationState, x, y, area, damage float64, piercing bool, source ecs.EntityID) int {
	count := 0
	for _, eid := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](s.EM) {
		if !s.IsEnemyAlive(eid) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, eid)
		epos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, eid)
		if utils.Distance(x, y, epos.X, epos.Y) <= area+enemy.Radius {
			ApplyDamage(s, eid, damage, piercing, source)
			count++
		}
	}
	return count
}
