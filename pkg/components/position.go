package components

// PositionComponent 实体在战场上的坐标（逻辑分辨率 1280x720）
type PositionComponent struct {
	X, Y float64
}

// VelocityComponent 每帧位移
type VelocityComponent struct {
	VX, VY float64
}
