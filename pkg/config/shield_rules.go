package config

import "fmt"

// ShieldRule 生成时获得吸收护盾的概率阶梯
//
// 概率 = Chance + ((wave - FromWave) / RampWaves) × RampBy（RampWaves 为 0 时不增长）。
// 获得护盾后若配置了 Enhanced，再掷一次决定是否升级为强化护盾。
type ShieldRule struct {
	FromWave  int             `yaml:"fromWave"`
	ToWave    int             `yaml:"toWave,omitempty"` // 0 表示不设上限
	Chance    float64         `yaml:"chance"`
	RampBy    float64         `yaml:"rampBy,omitempty"`
	RampWaves int             `yaml:"rampWaves,omitempty"`
	Charges   int             `yaml:"charges"`
	Enhanced  *EnhancedShield `yaml:"enhanced,omitempty"`
}

// EnhancedShield 强化护盾
type EnhancedShield struct {
	Chance  float64 `yaml:"chance"`
	Charges int     `yaml:"charges"`
}

func validateShieldRules(rules []ShieldRule) error {
	for i, r := range rules {
		if r.FromWave < 0 {
			return fmt.Errorf("shield rule %d: fromWave cannot be negative", i)
		}
		if r.ToWave != 0 && r.ToWave < r.FromWave {
			return fmt.Errorf("shield rule %d: toWave (%d) is before fromWave (%d)", i, r.ToWave, r.FromWave)
		}
		if r.Chance < 0 || r.Chance > 1 {
			return fmt.Errorf("shield rule %d: chance must be in [0, 1], got %v", i, r.Chance)
		}
		if r.Charges < 1 {
			return fmt.Errorf("shield rule %d: charges must be at least 1", i)
		}
		if r.RampWaves < 0 {
			return fmt.Errorf("shield rule %d: rampWaves cannot be negative", i)
		}
		if e := r.Enhanced; e != nil && (e.Chance < 0 || e.Chance > 1 || e.Charges < 1) {
			return fmt.Errorf("shield rule %d: enhanced shield requires chance in [0, 1] and charges >= 1", i)
		}
	}
	return nil
}

// ShieldRuleFor 返回第 wave 波生效的护盾规则，没有时返回 nil
func (l *LevelConfig) ShieldRuleFor(wave int) *ShieldRule {
	for i := range l.Shields {
		r := &l.Shields[i]
		if wave >= r.FromWave && (r.ToWave == 0 || wave <= r.ToWave) {
			return r
		}
	}
	return nil
}

// ChanceAt 计算该规则在第 wave 波的护盾概率
func (r *ShieldRule) ChanceAt(wave int) float64 {
	chance := r.Chance
	if r.RampWaves > 0 {
		chance += (float64(wave-r.FromWave) / float64(r.RampWaves)) * r.RampBy
	}
	if chance > 1 {
		return 1
	}
	return chance
}
