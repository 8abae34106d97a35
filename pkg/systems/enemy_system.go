package systems

import (
	"log"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// EnemySystem 敌人自身的逐帧推进
// 职责：
// - 传送、中毒、沿路径移动
// - 召唤、回复、强化光环等种类行为
// - 抵达终点与中毒致死的即时结算
type EnemySystem struct {
	state *game.SimulationState
}

// NewEnemySystem 创建敌人系统
func NewEnemySystem(state *game.SimulationState) *EnemySystem {
	return &EnemySystem{state: state}
}

// Update 推进所有存活敌人一帧
// 本帧新生成的敌人（召唤、分裂）从下一帧开始推进。
func (s *EnemySystem) Update() {
	st := s.state
	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.HealthComponent, *components.PositionComponent](st.EM) {
		if !st.IsEnemyAlive(id) {
			continue
		}
		s.Advance(id)

		enemy, _ := ecs.GetComponent[*components.EnemyComponent](st.EM, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](st.EM, id)
		switch {
		case enemy.Arrived:
			ResolveArrival(st, id)
		case health.Current <= 0:
			ResolveDeath(st, id)
		}
	}
}

// Advance 推进单个敌人一帧
func (s *EnemySystem) Advance(id ecs.EntityID) {
	st := s.state
	em := st.EM
	enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	health, _ := ecs.GetComponent[*components.HealthComponent](em, id)
	path := st.Level.Path

	if enemy.PathIndex+1 >= len(path) {
		enemy.Arrived = true
		return
	}
	target := path[enemy.PathIndex+1]

	if s.tryTeleport(id, enemy, pos) {
		return
	}
	if enemy.TeleportCooldown > 0 {
		enemy.TeleportCooldown--
	}

	s.updatePoison(id)
	if health.Current <= 0 {
		return
	}

	dx := target.X - pos.X
	dy := target.Y - pos.Y
	dist := utils.Distance(pos.X, pos.Y, target.X, target.Y)
	var dirX, dirY float64
	if dist > 0 {
		dirX, dirY = dx/dist, dy/dist
	}

	// 剩余距离不超过本帧速度时吸附到路径点，不留余量
	if dist <= enemy.Speed {
		pos.X, pos.Y = target.X, target.Y
		enemy.PathIndex++
	} else {
		pos.X += dirX * enemy.Speed
		pos.Y += dirY * enemy.Speed
	}

	s.updateSummon(id, enemy, pos, dirX, dirY)
	s.updateRegen(id, health)
	s.updateAura(id, pos)
}

// tryTeleport 位于传送入口附近时跳到出口
func (s *EnemySystem) tryTeleport(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent) bool {
	st := s.state
	if len(st.Level.Teleporters) == 0 || enemy.TeleportCooldown != 0 {
		return false
	}
	path := st.Level.Path
	for _, tp := range st.Level.Teleporters {
		entry := path[tp.Entry]
		if enemy.PathIndex != tp.Entry || utils.Distance(pos.X, pos.Y, entry.X, entry.Y) >= st.Rules.TeleportSnapRadius {
			continue
		}
		exit := path[tp.Exit]
		enemy.PathIndex = tp.Exit
		pos.X, pos.Y = exit.X, exit.Y
		enemy.TeleportCooldown = st.Rules.TeleportCooldown
		entities.NewCircleEffect(st.EM, components.EffectTeleport, exit.X, exit.Y, enemy.Radius, st.Rules.TeleportLife)
		return true
	}
	return false
}

// updatePoison 中毒持续时间与伤害节拍分别计数
// 未中毒时节拍归零，下次中毒立即生效
func (s *EnemySystem) updatePoison(id ecs.EntityID) {
	st := s.state
	poison, ok := ecs.GetComponent[*components.PoisonComponent](st.EM, id)
	if !ok {
		return
	}
	if poison.Remaining <= 0 {
		poison.TickTimer = 0
		return
	}

	poison.Remaining--
	poison.TickTimer--
	if poison.TickTimer <= 0 {
		ApplyDamage(st, id, poison.Damage, true, ecs.InvalidEntity)
		poison.TickTimer = st.Rules.PoisonInterval
	}
}

// updateSummon 计时超过间隔后在前进方向上召唤仆从
func (s *EnemySystem) updateSummon(id ecs.EntityID, enemy *components.EnemyComponent, pos *components.PositionComponent, dirX, dirY float64) {
	st := s.state
	summoner, ok := ecs.GetComponent[*components.SummonerComponent](st.EM, id)
	if !ok || len(summoner.Minions) == 0 {
		return
	}

	summoner.Timer++
	if summoner.Timer <= summoner.Interval {
		return
	}
	summoner.Timer = 0

	kind := summoner.Minions[0]
	if len(summoner.Minions) > 1 {
		kind = summoner.Minions[st.RNG.Intn(len(summoner.Minions))]
	}
	x := pos.X + dirX*summoner.Offset
	y := pos.Y + dirY*summoner.Offset
	if _, err := SpawnEnemy(st, kind, x, y, enemy.PathIndex); err != nil {
		log.Printf("[EnemySystem] Warning: summon failed: %v", err)
	}
}

// updateRegen 未受伤超过延迟后每帧回复，不超过最大生命值
func (s *EnemySystem) updateRegen(id ecs.EntityID, health *components.HealthComponent) {
	regen, ok := ecs.GetComponent[*components.RegenComponent](s.state.EM, id)
	if !ok {
		return
	}
	regen.Timer++
	if regen.Timer > regen.Delay && health.Current < health.Max {
		health.Current = min(health.Current+regen.Amount, health.Max)
	}
}

// updateAura 永久强化半径内尚未被强化的其他存活敌人
func (s *EnemySystem) updateAura(id ecs.EntityID, pos *components.PositionComponent) {
	st := s.state
	em := st.EM
	aura, ok := ecs.GetComponent[*components.AuraComponent](em, id)
	if !ok {
		return
	}

	for _, other := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.PositionComponent](em) {
		if other == id || !st.IsEnemyAlive(other) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, other)
		if enemy.Enhanced {
			continue
		}
		opos, _ := ecs.GetComponent[*components.PositionComponent](em, other)
		if utils.Distance(pos.X, pos.Y, opos.X, opos.Y) >= aura.Radius {
			continue
		}
		applyAura(em, other, enemy, aura)
	}
}

func applyAura(em *ecs.EntityManager, id ecs.EntityID, enemy *components.EnemyComponent, aura *components.AuraComponent) {
	enemy.Enhanced = true
	enemy.BaseSpeed *= aura.SpeedMultiplier
	enemy.Speed *= aura.SpeedMultiplier

	if health, ok := ecs.GetComponent[*components.HealthComponent](em, id); ok {
		bonus := health.Max * aura.HealthBonus
		health.Max += bonus
		health.Current += bonus
	}
	if armor, ok := ecs.GetComponent[*components.ArmorComponent](em, id); ok {
		armor.Value += aura.ArmorBonus
	}
}
