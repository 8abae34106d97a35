package utils

// 缓动函数接受进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]，
// 渲染端用它们让视觉提示按寿命比例收缩和淡出。

// EaseOutQuad 二次方缓出，开始快、结束慢
// f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入，开始慢、结束快
// f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
