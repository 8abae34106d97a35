package entities

import (
	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
)

// NewLineEffect 创建线段类视觉提示（轨道炮光束、闪电）
func NewLineEffect(em *ecs.EntityManager, kind components.EffectKind, x1, y1, x2, y2 float64, life int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x1, Y: y1})
	ecs.AddComponent(em, id, &components.EffectComponent{Kind: kind, X1: x1, Y1: y1, X2: x2, Y2: y2})
	ecs.AddComponent(em, id, &components.LifetimeComponent{Remaining: life, Max: life})
	return id
}

// NewCircleEffect 创建圆形视觉提示（爆炸、死亡痕迹、传送闪光）
func NewCircleEffect(em *ecs.EntityManager, kind components.EffectKind, x, y, size float64, life int) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.EffectComponent{Kind: kind, X1: x, Y1: y, X2: x, Y2: y, Size: size})
	ecs.AddComponent(em, id, &components.LifetimeComponent{Remaining: life, Max: life})
	return id
}
