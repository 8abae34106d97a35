package config

// SimulationRules 全局模拟常量
// 对应 levels.yaml 的 rules 段，缺省字段由 applyRuleDefaults 补齐。
type SimulationRules struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	PlacementMargin float64 `yaml:"placementMargin"` // 距离边界的最小距离
	PathClearance   float64 `yaml:"pathClearance"`   // 距离路径线段的最小距离
	TowerSpacing    float64 `yaml:"towerSpacing"`    // 塔与塔之间的最小距离
	SellRefund      float64 `yaml:"sellRefund"`      // 出售返还比例
	StartingLives   int     `yaml:"startingLives"`

	TeleportSnapRadius float64 `yaml:"teleportSnapRadius"`
	TeleportCooldown   int     `yaml:"teleportCooldown"`

	PoisonRefresh  int `yaml:"poisonRefresh"`  // 酸液池刷新的中毒持续帧数
	PoisonInterval int `yaml:"poisonInterval"` // 毒伤间隔

	MuzzleOffset       float64 `yaml:"muzzleOffset"`
	RailHalfWidth      float64 `yaml:"railHalfWidth"`
	RailChargeWindow   int     `yaml:"railChargeWindow"`
	LightningHopRadius float64 `yaml:"lightningHopRadius"`
	LightningFalloff   float64 `yaml:"lightningFalloff"`
	BeamRampPeriod     float64 `yaml:"beamRampPeriod"`

	ProjectileRadius float64 `yaml:"projectileRadius"`
	FlameGrowth      float64 `yaml:"flameGrowth"`
	FlameMaxRadius   float64 `yaml:"flameMaxRadius"`
	ProximitySlack   float64 `yaml:"proximitySlack"` // 近炸判定的额外距离

	PoolDuration     int     `yaml:"poolDuration"`
	LongPoolDuration int     `yaml:"longPoolDuration"`
	LongPoolRadius   float64 `yaml:"longPoolRadius"` // 达到该半径的酸液池使用长持续时间

	DefaultShieldCharges int `yaml:"defaultShieldCharges"`

	RailBeamLife int `yaml:"railBeamLife"`
	BoltLife     int `yaml:"boltLife"`
	BlastLife    int `yaml:"blastLife"`
	SplatterLife int `yaml:"splatterLife"`
	TeleportLife int `yaml:"teleportLife"`
}

// DefaultRules 返回默认的模拟常量
func DefaultRules() SimulationRules {
	return SimulationRules{
		Width:                1280,
		Height:               720,
		PlacementMargin:      20,
		PathClearance:        40,
		TowerSpacing:         35,
		SellRefund:           0.7,
		StartingLives:        20,
		TeleportSnapRadius:   10,
		TeleportCooldown:     100,
		PoisonRefresh:        60,
		PoisonInterval:       60,
		MuzzleOffset:         20,
		RailHalfWidth:        20,
		RailChargeWindow:     60,
		LightningHopRadius:   150,
		LightningFalloff:     0.8,
		BeamRampPeriod:       60,
		ProjectileRadius:     2,
		FlameGrowth:          0.5,
		FlameMaxRadius:       20,
		ProximitySlack:       5,
		PoolDuration:         180,
		LongPoolDuration:     300,
		LongPoolRadius:       80,
		DefaultShieldCharges: 10,
		RailBeamLife:         60,
		BoltLife:             10,
		BlastLife:            20,
		SplatterLife:         600,
		TeleportLife:         15,
	}
}

// applyRuleDefaults 将零值字段替换为默认值
func applyRuleDefaults(r *SimulationRules) {
	d := DefaultRules()
	setF := func(v *float64, def float64) {
		if *v == 0 {
			*v = def
		}
	}
	setI := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}

	setF(&r.Width, d.Width)
	setF(&r.Height, d.Height)
	setF(&r.PlacementMargin, d.PlacementMargin)
	setF(&r.PathClearance, d.PathClearance)
	setF(&r.TowerSpacing, d.TowerSpacing)
	setF(&r.SellRefund, d.SellRefund)
	setI(&r.StartingLives, d.StartingLives)
	setF(&r.TeleportSnapRadius, d.TeleportSnapRadius)
	setI(&r.TeleportCooldown, d.TeleportCooldown)
	setI(&r.PoisonRefresh, d.PoisonRefresh)
	setI(&r.PoisonInterval, d.PoisonInterval)
	setF(&r.MuzzleOffset, d.MuzzleOffset)
	setF(&r.RailHalfWidth, d.RailHalfWidth)
	setI(&r.RailChargeWindow, d.RailChargeWindow)
	setF(&r.LightningHopRadius, d.LightningHopRadius)
	setF(&r.LightningFalloff, d.LightningFalloff)
	setF(&r.BeamRampPeriod, d.BeamRampPeriod)
	setF(&r.ProjectileRadius, d.ProjectileRadius)
	setF(&r.FlameGrowth, d.FlameGrowth)
	setF(&r.FlameMaxRadius, d.FlameMaxRadius)
	setF(&r.ProximitySlack, d.ProximitySlack)
	setI(&r.PoolDuration, d.PoolDuration)
	setI(&r.LongPoolDuration, d.LongPoolDuration)
	setF(&r.LongPoolRadius, d.LongPoolRadius)
	setI(&r.DefaultShieldCharges, d.DefaultShieldCharges)
	setI(&r.RailBeamLife, d.RailBeamLife)
	setI(&r.BoltLife, d.BoltLife)
	setI(&r.BlastLife, d.BlastLife)
	setI(&r.SplatterLife, d.SplatterLife)
	setI(&r.TeleportLife, d.TeleportLife)
}
