package systems

import (
	"testing"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/types"
)

func launch(t *testing.T, s *game.SimulationState, spawn entities.ProjectileSpawn) (ecs.EntityID, *components.ProjectileComponent) {
	t.Helper()
	id, err := entities.NewProjectileEntity(s.EM, s.Rules, spawn)
	if err != nil {
		t.Fatalf("NewProjectileEntity failed: %v", err)
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](s.EM, id)
	return id, proj
}

// TestBulletHitsTarget 测试子弹追踪并命中目标
func TestBulletHitsTarget(t *testing.T) {
	s, _ := newTestState(t)
	ps := NewProjectileSystem(s)
	rifle := addTower(t, s, types.TowerRifleman, 100, 300)
	enemy := addDummy(t, s, 150, 360, 0, 100, 0)

	id, proj := launch(t, s, entities.ProjectileSpawn{
		Attack: types.AttackBullet, Source: rifle, Target: enemy,
		X: 100, Y: 360, TargetX: 150, TargetY: 360,
		Damage: 10, Speed: 12,
	})

	ps.Update()
	ps.Update()
	if hpOf(s, enemy) != 100 || !proj.Active {
		t.Fatal("bullet should still be in flight")
	}

	ps.Update()
	if got := hpOf(s, enemy); got != 90 {
		t.Errorf("hp = %v, want 90", got)
	}
	if !s.EM.IsMarkedForDestroy(id) {
		t.Error("spent bullet should be marked for destroy")
	}
}

// TestBulletLeavesField 测试目标消失后子弹直线飞出场外
func TestBulletLeavesField(t *testing.T) {
	s, _ := newTestState(t)
	ps := NewProjectileSystem(s)
	enemy := addDummy(t, s, 1270, 360, 0, 100, 0)

	id, proj := launch(t, s, entities.ProjectileSpawn{
		Attack: types.AttackBullet, Target: enemy,
		X: 1200, Y: 360, TargetX: 1270, TargetY: 360,
		Damage: 10, Speed: 12,
	})
	s.EM.DestroyEntity(enemy)
	s.EM.RemoveMarkedEntities()

	for i := 0; i < 10 && !s.EM.IsMarkedForDestroy(id); i++ {
		ps.Update()
	}
	if proj.Target != ecs.InvalidEntity {
		t.Errorf("Target = %d, want cleared", proj.Target)
	}
	if proj.Active || !s.EM.IsMarkedForDestroy(id) {
		t.Error("bullet should deactivate after leaving the field")
	}
}

// TestBombProximity 测试目标消失后炸弹近炸并造成范围伤害
func TestBombProximity(t *testing.T) {
	s, _ := newTestState(t)
	ps := NewProjectileSystem(s)
	gone := addDummy(t, s, 400, 360, 0, 100, 0)
	bystander := addDummy(t, s, 130, 360, 0, 100, 0)
	neighbour := addDummy(t, s, 200, 360, 0, 100, 0)

	launch(t, s, entities.ProjectileSpawn{
		Attack: types.AttackBomb, Target: gone,
		X: 100, Y: 360, TargetX: 400, TargetY: 360,
		Damage: 30, AoE: 100, Speed: 6,
	})
	s.EM.DestroyEntity(gone)
	s.EM.RemoveMarkedEntities()

	for i := 0; i < 3; i++ {
		ps.Update()
	}

	if got := hpOf(s, bystander); got != 70 {
		t.Errorf("bystander hp = %v, want 70", got)
	}
	if got := hpOf(s, neighbour); got != 70 {
		t.Errorf("neighbour hp = %v, want 70 (inside blast)", got)
	}
	if n := countWith[*components.EffectComponent](s); n != 1 {
		t.Errorf("blast effects = %d, want 1", n)
	}
}

// TestAcidCreatesPuddle 测试酸液命中生成酸液池而不是直接伤害
func TestAcidCreatesPuddle(t *testing.T) {
	tests := []struct {
		name     string
		aoe      float64
		wantLife int
	}{
		{"普通酸液池", 60, 180},
		{"大范围酸液池持续更久", 80, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestState(t)
			ps := NewProjectileSystem(s)
			enemy := addDummy(t, s, 110, 360, 0, 100, 0)

			launch(t, s, entities.ProjectileSpawn{
				Attack: types.AttackAcid, Target: enemy,
				X: 100, Y: 360, TargetX: 110, TargetY: 360,
				Damage: 5, AoE: tt.aoe, Slow: 0.5, Speed: 8,
			})
			ps.Update()

			if got := hpOf(s, enemy); got != 100 {
				t.Errorf("hp = %v, want 100", got)
			}
			puddles := ecs.GetEntitiesWith1[*components.PuddleComponent](s.EM)
			if len(puddles) != 1 {
				t.Fatalf("puddles = %d, want 1", len(puddles))
			}
			puddle, _ := ecs.GetComponent[*components.PuddleComponent](s.EM, puddles[0])
			life, _ := ecs.GetComponent[*components.LifetimeComponent](s.EM, puddles[0])
			if puddle.Radius != tt.aoe || life.Remaining != tt.wantLife {
				t.Errorf("puddle radius=%v life=%d, want %v and %d", puddle.Radius, life.Remaining, tt.aoe, tt.wantLife)
			}
		})
	}
}

// TestFlame 测试火焰无视护甲灼烧覆盖到的全部敌人
func TestFlame(t *testing.T) {
	s, _ := newTestState(t)
	ps := NewProjectileSystem(s)
	a := addDummy(t, s, 115, 360, 0, 100, 50)
	b := addDummy(t, s, 115, 365, 0, 100, 50)

	id, proj := launch(t, s, entities.ProjectileSpawn{
		Attack: types.AttackFlame, Target: a,
		X: 100, Y: 360, TargetX: 115, TargetY: 360,
		Damage: 1.5, Pierce: true, Speed: 15,
	})
	ps.Update()

	for _, eid := range []ecs.EntityID{a, b} {
		if got := hpOf(s, eid); got != 98.5 {
			t.Errorf("enemy %d hp = %v, want 98.5", eid, got)
		}
	}
	if proj.Active || !s.EM.IsMarkedForDestroy(id) {
		t.Error("flame should burn out after touching enemies")
	}
}

// TestFlameBurnsOut 测试没有碰到敌人的火焰扩张到上限后熄灭
func TestFlameBurnsOut(t *testing.T) {
	s, _ := newTestState(t)
	ps := NewProjectileSystem(s)

	id, proj := launch(t, s, entities.ProjectileSpawn{
		Attack: types.AttackFlame,
		X: 100, Y: 100, Damage: 1.5, Pierce: true, Speed: 15,
	})

	frames := 0
	for proj.Active && frames < 100 {
		ps.Update()
		frames++
	}
	// 半径从 2 每帧增长 0.5，超过 20 时熄灭
	if frames != 37 {
		t.Errorf("flame lasted %d frames, want 37", frames)
	}
	if !s.EM.IsMarkedForDestroy(id) {
		t.Error("burnt-out flame should be marked for destroy")
	}
}
