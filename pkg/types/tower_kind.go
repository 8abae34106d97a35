package types

// TowerKind 防御塔种类标识（对应 towers.yaml 中的键）
type TowerKind string

// 内置防御塔种类
const (
	TowerRifleman   TowerKind = "rifleman"
	TowerSniper     TowerKind = "sniper"
	TowerGunner     TowerKind = "mg"
	TowerBombardier TowerKind = "bombardier"
	TowerPyro       TowerKind = "pyro"
	TowerTesla      TowerKind = "tesla"
	TowerLaser      TowerKind = "laser"
	TowerMortar     TowerKind = "mortar"
	TowerChemist    TowerKind = "chemist"
	TowerTrumpeter  TowerKind = "trumpeter"
	TowerLabLaser   TowerKind = "lab_laser"
	TowerRailgun    TowerKind = "railgun"
)

// String 返回配置字符串
func (k TowerKind) String() string {
	return string(k)
}
