package components

// EffectKind 瞬时视觉提示的类型
// 核心模拟只维护它们的几何与寿命，绘制交给渲染端。
type EffectKind int

const (
	EffectRailBeam EffectKind = iota // 轨道炮光束
	EffectBolt                       // 闪电链的一段
	EffectBlast                      // 范围爆炸
	EffectSplatter                   // 敌人死亡痕迹
	EffectTeleport                   // 传送闪光
)

// String 返回效果类型名称
func (k EffectKind) String() string {
	switch k {
	case EffectRailBeam:
		return "rail_beam"
	case EffectBolt:
		return "bolt"
	case EffectBlast:
		return "blast"
	case EffectSplatter:
		return "splatter"
	case EffectTeleport:
		return "teleport"
	default:
		return "unknown"
	}
}

// EffectComponent 瞬时视觉提示
// 线段类效果使用 (X1,Y1)-(X2,Y2)，圆形类效果使用 (X1,Y1) 与 Size。
type EffectComponent struct {
	Kind           EffectKind
	X1, Y1, X2, Y2 float64
	Size           float64
}
