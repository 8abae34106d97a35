// Package types 定义共享的基础类型
package types

// EnemyKind 敌人种类标识（对应 enemies.yaml 中的键）
// 内容表在加载时完成校验，运行时不再处理未知种类。
type EnemyKind string

// 内置敌人种类
const (
	EnemyWalker      EnemyKind = "walker"
	EnemyRunner      EnemyKind = "runner"
	EnemyTank        EnemyKind = "tank"
	EnemyBoss        EnemyKind = "boss"
	EnemyCarrier     EnemyKind = "carrier"
	EnemyMiniCarrier EnemyKind = "mini_carrier"
	EnemyVampire     EnemyKind = "vampire"
	EnemyNecromancer EnemyKind = "necromancer"
	EnemyMutant      EnemyKind = "mutant"
	EnemyScientist   EnemyKind = "scientist"
)

// String 返回配置字符串
func (k EnemyKind) String() string {
	return string(k)
}
