package utils

import "math"

// Distance 两点间距离
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// DistToSegment 点 (x, y) 到线段 (x1, y1)-(x2, y2) 的最短距离
// 退化线段（两端点重合）按点处理。
func DistToSegment(x, y, x1, y1, x2, y2 float64) float64 {
	a := x - x1
	b := y - y1
	c := x2 - x1
	d := y2 - y1

	lenSq := c*c + d*d
	param := -1.0
	if lenSq != 0 {
		param = (a*c + b*d) / lenSq
	}

	var xx, yy float64
	switch {
	case param < 0:
		xx, yy = x1, y1
	case param > 1:
		xx, yy = x2, y2
	default:
		xx = x1 + param*c
		yy = y1 + param*d
	}
	return math.Hypot(x-xx, y-yy)
}

// AngleTo 从 (x1, y1) 指向 (x2, y2) 的角度（弧度）
func AngleTo(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// PointAt 从 (x, y) 沿 angle 方向前进 length 后的坐标
func PointAt(x, y, angle, length float64) (float64, float64) {
	return x + math.Cos(angle)*length, y + math.Sin(angle)*length
}
