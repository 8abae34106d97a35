package components

// ArmorComponent 存储敌人的护甲值
//
// 设计说明:
// - 护甲是固定减伤，只对非穿甲攻击生效
// - 减伤后的伤害至少为 1
// - 运输车类敌人以极高护甲（999）模拟"只怕穿甲"
type ArmorComponent struct {
	Value float64
}

// ShieldComponent 吸收护盾
// 每层护盾吸收一次攻击实例，与伤害数值无关。
type ShieldComponent struct {
	Charges int
}

// Active 护盾是否仍有剩余层数
func (s *ShieldComponent) Active() bool {
	return s != nil && s.Charges > 0
}
