package components

// HealthComponent 存储敌人的生命值信息
// 生命值为浮点数：光束伤害随聚焦时间指数增长，毒液与火焰伤害均为小数。
type HealthComponent struct {
	Current float64 // 当前生命值
	Max     float64 // 最大生命值
}

// Fraction 返回当前生命值比例，范围 [0, 1]
func (h *HealthComponent) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := h.Current / h.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
