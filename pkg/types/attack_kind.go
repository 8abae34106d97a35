package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AttackKind 攻击方式（封闭枚举）
// 新增攻击方式需要同时在 systems 的结算 switch 中增加分支。
type AttackKind int

const (
	// AttackUnknown 未知攻击方式（零值，仅用于校验）
	AttackUnknown AttackKind = iota
	AttackBullet             // 追踪子弹
	AttackSniper             // 狙击弹（高速追踪）
	AttackBomb               // 直线飞行的范围炸弹
	AttackAcid               // 命中后生成酸液池
	AttackFlame              // 扩张的火焰
	AttackBeam               // 持续光束（伤害随聚焦时间指数增长）
	AttackLightning          // 连锁闪电
	AttackRail               // 瞬发轨道炮
	AttackBuff               // 辅助塔，不直接攻击
)

var attackKindStringMap = map[AttackKind]string{
	AttackBullet:    "bullet",
	AttackSniper:    "sniper",
	AttackBomb:      "bomb",
	AttackAcid:      "acid",
	AttackFlame:     "flame",
	AttackBeam:      "beam",
	AttackLightning: "lightning",
	AttackRail:      "rail",
	AttackBuff:      "buff",
}

var stringToAttackKindMap map[string]AttackKind

func init() {
	stringToAttackKindMap = make(map[string]AttackKind, len(attackKindStringMap))
	for k, s := range attackKindStringMap {
		stringToAttackKindMap[s] = k
	}
}

// String 返回攻击方式的配置字符串表示
func (k AttackKind) String() string {
	if s, ok := attackKindStringMap[k]; ok {
		return s
	}
	return "unknown"
}

// AttackKindFromString 将配置字符串转换为 AttackKind
// 未知字符串返回 AttackUnknown
func AttackKindFromString(s string) AttackKind {
	if k, ok := stringToAttackKindMap[s]; ok {
		return k
	}
	return AttackUnknown
}

// IsProjectile 是否通过弹道实体结算
func (k AttackKind) IsProjectile() bool {
	switch k {
	case AttackBullet, AttackSniper, AttackBomb, AttackAcid, AttackFlame:
		return true
	default:
		return false
	}
}

// HomesOnTarget 弹道是否每帧重新瞄准目标（炸弹直线飞行）
func (k AttackKind) HomesOnTarget() bool {
	return k.IsProjectile() && k != AttackBomb
}

// HasProximityFallback 目标消失后是否改为近炸
func (k AttackKind) HasProximityFallback() bool {
	return k == AttackBomb || k == AttackAcid
}

// UnmarshalYAML 从 YAML 字符串解析攻击方式
func (k *AttackKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed := AttackKindFromString(s)
	if parsed == AttackUnknown {
		return fmt.Errorf("unknown attack kind %q", s)
	}
	*k = parsed
	return nil
}

// MarshalYAML 输出配置字符串
func (k AttackKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}
