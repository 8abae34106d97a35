package components

// LifetimeComponent 以逻辑帧为单位管理实体的存在时间
// 用于酸液池、轨道炮光束、闪电等有限时长的实体
type LifetimeComponent struct {
	Remaining int // 剩余帧数
	Max       int // 初始帧数
}

// Progress 返回已经过的比例，范围 [0, 1]
func (l *LifetimeComponent) Progress() float64 {
	if l.Max <= 0 {
		return 1
	}
	return 1 - float64(l.Remaining)/float64(l.Max)
}
