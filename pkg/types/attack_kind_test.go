package types

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAttackKindString(t *testing.T) {
	tests := []struct {
		kind     AttackKind
		expected string
	}{
		{AttackBullet, "bullet"},
		{AttackBomb, "bomb"},
		{AttackRail, "rail"},
		{AttackBuff, "buff"},
		{AttackUnknown, "unknown"},
		{AttackKind(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAttackKindFromString(t *testing.T) {
	for kind, s := range attackKindStringMap {
		if got := AttackKindFromString(s); got != kind {
			t.Errorf("AttackKindFromString(%q) = %v, want %v", s, got, kind)
		}
	}
	if got := AttackKindFromString("laser_sword"); got != AttackUnknown {
		t.Errorf("unknown string should map to AttackUnknown, got %v", got)
	}
}

func TestAttackKindTraits(t *testing.T) {
	// 炸弹直线飞行，酸液追踪
	if AttackBomb.HomesOnTarget() {
		t.Error("bomb should fly straight")
	}
	if !AttackAcid.HomesOnTarget() {
		t.Error("acid should home on its target")
	}
	if AttackBeam.IsProjectile() || AttackRail.IsProjectile() || AttackLightning.IsProjectile() {
		t.Error("beam, rail and lightning resolve without projectiles")
	}
	if !AttackBomb.HasProximityFallback() || !AttackAcid.HasProximityFallback() {
		t.Error("bomb and acid should fall back to proximity triggering")
	}
	if AttackBullet.HasProximityFallback() {
		t.Error("bullet should not proximity trigger")
	}
}

func TestAttackKindYAML(t *testing.T) {
	t.Run("解析合法值", func(t *testing.T) {
		var v struct {
			Kind AttackKind `yaml:"kind"`
		}
		if err := yaml.Unmarshal([]byte("kind: lightning\n"), &v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Kind != AttackLightning {
			t.Errorf("expected lightning, got %v", v.Kind)
		}
	})

	t.Run("未知值报错", func(t *testing.T) {
		var v struct {
			Kind AttackKind `yaml:"kind"`
		}
		if err := yaml.Unmarshal([]byte("kind: catapult\n"), &v); err == nil {
			t.Error("expected error for unknown attack kind")
		}
	})

	t.Run("序列化为字符串", func(t *testing.T) {
		out, err := yaml.Marshal(map[string]AttackKind{"kind": AttackAcid})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(out) != "kind: acid\n" {
			t.Errorf("unexpected yaml output: %q", out)
		}
	})
}
