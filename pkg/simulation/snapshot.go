package simulation

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/systems"
	"github.com/decker502/zombie-defense/pkg/types"
)

// EnemyView 渲染用的敌人只读视图
type EnemyView struct {
	ID        ecs.EntityID
	Kind      types.EnemyKind
	X, Y      float64
	Radius    float64
	Health    float64 // 生命值比例 [0, 1]
	Shield    int
	Armor     float64
	PathIndex int
	Poisoned  bool
	Slowed    bool
	Enhanced  bool
}

// TowerView 渲染用的防御塔只读视图
type TowerView struct {
	ID          ecs.EntityID
	Kind        types.TowerKind
	Attack      types.AttackKind
	X, Y        float64
	Angle       float64
	Range       float64 // 含加成的有效射程
	Tier        int
	MaxTier     int
	Kills       int
	TotalSpent  int
	UpgradeCost int // 满级时为 0
	Target      ecs.EntityID
	Charging    bool
	Buffed      bool
}

// ProjectileView 渲染用的弹道只读视图
type ProjectileView struct {
	ID     ecs.EntityID
	Attack types.AttackKind
	X, Y   float64
	Radius float64
}

// PuddleView 渲染用的酸液池只读视图
type PuddleView struct {
	X, Y     float64
	Radius   float64
	Progress float64 // 已经过的寿命比例
}

// EffectView 渲染用的视觉提示只读视图
type EffectView struct {
	Kind           components.EffectKind
	X1, Y1, X2, Y2 float64
	Size           float64
	Progress       float64
}

// Snapshot 某一帧的只读快照
// 各切片按实体创建顺序排列，持有者可以随意修改而不影响模拟。
type Snapshot struct {
	Tick       uint64
	Level      int
	Money      int
	Lives      int
	Wave       int
	Waves      int
	WaveActive bool
	Victory    bool
	GameOver   bool
	Speed      int

	Enemies     []EnemyView
	Towers      []TowerView
	Projectiles []ProjectileView
	Puddles     []PuddleView
	Effects     []EffectView
}

// Snapshot 生成当前帧的只读快照
func (sim *Simulation) Snapshot() Snapshot {
	s := sim.state
	snap := Snapshot{
		Tick:       s.Tick,
		Level:      s.Level.ID,
		Money:      s.Money,
		Lives:      s.Lives,
		Wave:       s.Wave,
		Waves:      s.Level.Waves,
		WaveActive: s.WaveActive,
		Victory:    s.Victory,
		GameOver:   s.GameOver,
		Speed:      sim.speed,
	}

	for _, id := range ecs.GetEntitiesWith3[*components.EnemyComponent, *components.HealthComponent, *components.PositionComponent](s.EM) {
		if !s.IsEnemyAlive(id) {
			continue
		}
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
		health, _ := ecs.GetComponent[*components.HealthComponent](s.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		view := EnemyView{
			ID:        id,
			Kind:      enemy.Kind,
			X:         pos.X,
			Y:         pos.Y,
			Radius:    enemy.Radius,
			Health:    health.Fraction(),
			PathIndex: enemy.PathIndex,
			Slowed:    enemy.Speed < enemy.BaseSpeed,
			Enhanced:  enemy.Enhanced,
		}
		if shield, ok := ecs.GetComponent[*components.ShieldComponent](s.EM, id); ok {
			view.Shield = shield.Charges
		}
		if armor, ok := ecs.GetComponent[*components.ArmorComponent](s.EM, id); ok {
			view.Armor = armor.Value
		}
		if poison, ok := ecs.GetComponent[*components.PoisonComponent](s.EM, id); ok {
			view.Poisoned = poison.Remaining > 0
		}
		snap.Enemies = append(snap.Enemies, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.EM) {
		if s.EM.IsMarkedForDestroy(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		buff, _ := ecs.GetComponent[*components.BuffComponent](s.EM, id)
		eff := systems.ComputeEffectiveStats(&tower.Stats, buff)

		view := TowerView{
			ID:         id,
			Kind:       tower.Kind,
			Attack:     tower.Attack,
			X:          pos.X,
			Y:          pos.Y,
			Angle:      tower.Angle,
			Range:      eff.Range,
			Tier:       tower.Tier,
			Kills:      tower.Kills,
			TotalSpent: tower.TotalSpent,
			Target:     tower.Target,
			Charging:   tower.Charging,
			Buffed:     buff != nil && (buff.Damage > 0 || buff.Range > 0 || buff.Pierce),
		}
		if archetype, ok := s.Content.Towers.Get(tower.Kind); ok {
			view.MaxTier = archetype.MaxTier()
			if next, ok := archetype.NextUpgrade(tower.Tier); ok {
				view.UpgradeCost = next.Cost
			}
		}
		snap.Towers = append(snap.Towers, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](s.EM) {
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.EM, id)
		if !proj.Active || s.EM.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:     id,
			Attack: proj.Attack,
			X:      pos.X,
			Y:      pos.Y,
			Radius: proj.Radius,
		})
	}

	for _, id := range ecs.GetEntitiesWith3[*components.PuddleComponent, *components.PositionComponent, *components.LifetimeComponent](s.EM) {
		puddle, _ := ecs.GetComponent[*components.PuddleComponent](s.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.EM, id)
		snap.Puddles = append(snap.Puddles, PuddleView{X: pos.X, Y: pos.Y, Radius: puddle.Radius, Progress: life.Progress()})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.EffectComponent, *components.LifetimeComponent](s.EM) {
		effect, _ := ecs.GetComponent[*components.EffectComponent](s.EM, id)
		life, _ := ecs.GetComponent[*components.LifetimeComponent](s.EM, id)
		snap.Effects = append(snap.Effects, EffectView{
			Kind:     effect.Kind,
			X1:       effect.X1,
			Y1:       effect.Y1,
			X2:       effect.X2,
			Y2:       effect.Y2,
			Size:     effect.Size,
			Progress: life.Progress(),
		})
	}

	return snap
}
