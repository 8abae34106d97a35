package entities

import (
	"fmt"
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/types"
)

// ProjectileSpawn 发射参数
// 伤害等数值是开火瞬间塔的有效属性快照。
type ProjectileSpawn struct {
	Attack types.AttackKind
	Source ecs.EntityID
	Target ecs.EntityID

	X, Y             float64 // 炮口坐标
	TargetX, TargetY float64 // 发射时目标的位置，决定初始速度方向

	Damage float64
	AoE    float64
	Pierce bool
	Slow   float64
	Speed  float64
}

// NewProjectileEntity 创建弹道实体
//
// 参数:
//   - em: 实体管理器
//   - rules: 全局模拟常量（弹道半径、酸液池持续时间）
//   - spawn: 发射参数
//
// 返回:
//   - ecs.EntityID: 创建的弹道实体ID
//   - error: 攻击类型不是弹道类时返回错误
func NewProjectileEntity(em *ecs.EntityManager, rules *config.SimulationRules, spawn ProjectileSpawn) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if !spawn.Attack.IsProjectile() {
		return 0, fmt.Errorf("attack %s does not launch projectiles", spawn.Attack)
	}

	vx, vy := spawn.Speed, 0.0
	if spawn.Target != ecs.InvalidEntity {
		angle := math.Atan2(spawn.TargetY-spawn.Y, spawn.TargetX-spawn.X)
		vx = math.Cos(angle) * spawn.Speed
		vy = math.Sin(angle) * spawn.Speed
	}

	duration := rules.PoolDuration
	if spawn.AoE >= rules.LongPoolRadius {
		duration = rules.LongPoolDuration
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: spawn.X, Y: spawn.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: vx, VY: vy})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Attack:       spawn.Attack,
		Source:       spawn.Source,
		Target:       spawn.Target,
		Damage:       spawn.Damage,
		AoE:          spawn.AoE,
		Pierce:       spawn.Pierce,
		Slow:         spawn.Slow,
		Speed:        spawn.Speed,
		Radius:       rules.ProjectileRadius,
		PoolDuration: duration,
		Active:       true,
	})

	return id, nil
}

// NewPuddleEntity 在命中点创建酸液池
func NewPuddleEntity(em *ecs.EntityManager, x, y, radius, damage, slow float64, duration int, source ecs.EntityID) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.PuddleComponent{
		Radius: radius,
		Damage: damage,
		Slow:   slow,
		Source: source,
	})
	ecs.AddComponent(em, id, &components.LifetimeComponent{Remaining: duration, Max: duration})
	return id
}
