package simulation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/types"
)

var testContent *config.Content

func loadTestContent(t *testing.T) *config.Content {
	t.Helper()
	if testContent != nil {
		return testContent
	}
	content, err := config.LoadContent("../../data")
	if err != nil {
		t.Fatalf("LoadContent failed: %v", err)
	}
	testContent = content
	return content
}

// newTestSim 创建模拟并记录全部事件
func newTestSim(t *testing.T, level int) (*Simulation, *event.Recorder) {
	t.Helper()
	sim, err := New(loadTestContent(t), level, 42)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	recorder := &event.Recorder{}
	sim.SubscribeAll(recorder)
	return sim, recorder
}

func lastNotice(rec *event.Recorder) string {
	notices := rec.OfType(event.NoticeRaised)
	if len(notices) == 0 {
		return ""
	}
	return notices[len(notices)-1].Data.(event.NoticeData).Text
}

func TestNew(t *testing.T) {
	sim, _ := newTestSim(t, 1)
	if sim.Money() != 450 || sim.Lives() != 20 || sim.Wave() != 0 {
		t.Errorf("initial state money=%d lives=%d wave=%d", sim.Money(), sim.Lives(), sim.Wave())
	}
	if sim.SpeedMultiplier() != 1 {
		t.Errorf("SpeedMultiplier() = %d, want 1", sim.SpeedMultiplier())
	}
	if _, err := New(loadTestContent(t), 99, 1); err == nil {
		t.Error("expected error for unknown level")
	}
}

// TestCanPlace 测试放置规则
func TestCanPlace(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"远离路径", 150, 200, true},
		{"距离路径 30", 150, 130, false},
		{"距离路径恰好 40", 150, 140, true},
		{"靠近左边界", 10, 300, false},
		{"靠近右边界", 1265, 300, false},
		{"路径拐角", 300, 100, false},
		{"路径中央", 450, 500, false},
	}

	sim, _ := newTestSim(t, 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sim.CanPlace(tt.x, tt.y); got != tt.want {
				t.Errorf("CanPlace(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// TestCanPlaceTowerSpacing 测试塔间距
func TestCanPlaceTowerSpacing(t *testing.T) {
	sim, _ := newTestSim(t, 1)
	if _, err := sim.PlaceTower(types.TowerRifleman, 150, 200); err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}
	if sim.CanPlace(180, 200) {
		t.Error("CanPlace should reject a spot 30 away from a tower")
	}
	if !sim.CanPlace(185, 200) {
		t.Error("CanPlace should accept a spot exactly 35 away from a tower")
	}
}

// TestCanPlaceTeleportGap 测试传送缺口不参与路径距离判定
func TestCanPlaceTeleportGap(t *testing.T) {
	sim, _ := newTestSim(t, 3)
	// (500,600)→(800,100) 的中点
	if !sim.CanPlace(650, 350) {
		t.Error("CanPlace should ignore the teleport gap segment")
	}
	if sim.CanPlace(310, 400) {
		t.Error("CanPlace should still reject spots next to regular segments")
	}
}

// TestPlaceTower 测试建造与各种拒绝原因
func TestPlaceTower(t *testing.T) {
	sim, rec := newTestSim(t, 1)

	id, err := sim.PlaceTower(types.TowerRifleman, 150, 200)
	if err != nil {
		t.Fatalf("PlaceTower failed: %v", err)
	}
	if sim.Money() != 350 {
		t.Errorf("Money() = %d, want 350", sim.Money())
	}
	placed := rec.OfType(event.TowerPlaced)
	if len(placed) != 1 || placed[0].Data.(event.TowerPlacedData).Entity != id {
		t.Errorf("TowerPlaced events = %+v", placed)
	}

	tests := []struct {
		name       string
		kind       types.TowerKind
		x, y       float64
		wantErr    error
		wantNotice string
	}{
		{"本关不可用", types.TowerTesla, 150, 300, ErrTowerNotAvailable, ""},
		{"未知种类", types.TowerKind("death_ray"), 150, 300, ErrTowerNotAvailable, ""},
		{"位置无效", types.TowerRifleman, 150, 110, ErrInvalidPlacement, "Invalid Placement!"},
		{"金钱不足", types.TowerGunner, 150, 300, ErrInsufficientFunds, "Not enough cash!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Reset()
			_, err := sim.PlaceTower(tt.kind, tt.x, tt.y)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PlaceTower() error = %v, want %v", err, tt.wantErr)
			}
			if sim.Money() != 350 {
				t.Errorf("Money() = %d, rejected command must not spend", sim.Money())
			}
			if got := lastNotice(rec); got != tt.wantNotice {
				t.Errorf("notice = %q, want %q", got, tt.wantNotice)
			}
			if rec.Count(event.TowerPlaced) != 0 {
				t.Error("rejected placement emitted TowerPlaced")
			}
		})
	}

	if n := len(sim.Snapshot().Towers); n != 1 {
		t.Errorf("towers = %d, want 1", n)
	}
}

// TestUpgradeTower 测试升级、金钱不足与满级
func TestUpgradeTower(t *testing.T) {
	sim, rec := newTestSim(t, 1)
	id, _ := sim.PlaceTower(types.TowerRifleman, 150, 200)

	if err := sim.UpgradeTower(id); err != nil {
		t.Fatalf("UpgradeTower failed: %v", err)
	}
	if sim.Money() != 200 {
		t.Errorf("Money() = %d, want 200", sim.Money())
	}
	if lastNotice(rec) != "Upgraded!" {
		t.Errorf("notice = %q, want Upgraded!", lastNotice(rec))
	}
	upgraded := rec.OfType(event.TowerUpgraded)
	if len(upgraded) != 1 || upgraded[0].Data.(event.TowerUpgradedData).Tier != 1 {
		t.Errorf("TowerUpgraded events = %+v", upgraded)
	}

	// 第二层需要 500
	if err := sim.UpgradeTower(id); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("UpgradeTower() error = %v, want ErrInsufficientFunds", err)
	}

	sim.state.Money = 10000
	for i := 0; i < 2; i++ {
		if err := sim.UpgradeTower(id); err != nil {
			t.Fatalf("UpgradeTower %d failed: %v", i+2, err)
		}
	}
	money := sim.Money()
	if err := sim.UpgradeTower(id); !errors.Is(err, ErrMaxTier) {
		t.Errorf("UpgradeTower() error = %v, want ErrMaxTier", err)
	}
	if sim.Money() != money {
		t.Error("max tier rejection must not spend")
	}

	view := sim.Snapshot().Towers[0]
	if view.Tier != 3 || view.TotalSpent != 100+150+500+1400 || view.UpgradeCost != 0 {
		t.Errorf("tower view = %+v", view)
	}

	if err := sim.UpgradeTower(ecs.EntityID(9999)); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("UpgradeTower(bogus) error = %v, want ErrTowerNotFound", err)
	}
}

// TestSellTower 测试出售返还累计投入的 70%
func TestSellTower(t *testing.T) {
	sim, rec := newTestSim(t, 1)
	id, _ := sim.PlaceTower(types.TowerRifleman, 150, 200)
	sim.UpgradeTower(id)

	refund, err := sim.SellTower(id)
	if err != nil {
		t.Fatalf("SellTower failed: %v", err)
	}
	if refund != 175 {
		t.Errorf("refund = %d, want 175", refund)
	}
	if sim.Money() != 450-250+175 {
		t.Errorf("Money() = %d, want %d", sim.Money(), 450-250+175)
	}
	if lastNotice(rec) != "Sold for $175" {
		t.Errorf("notice = %q", lastNotice(rec))
	}
	if rec.Count(event.TowerSold) != 1 {
		t.Errorf("TowerSold events = %d, want 1", rec.Count(event.TowerSold))
	}
	if len(sim.Snapshot().Towers) != 0 {
		t.Error("sold tower still present")
	}
	if !sim.CanPlace(150, 200) {
		t.Error("spot should be free after selling")
	}
	if _, err := sim.SellTower(id); !errors.Is(err, ErrTowerNotFound) {
		t.Errorf("second SellTower() error = %v, want ErrTowerNotFound", err)
	}
}

// TestSellRefundRoundsDown 测试返还金额向下取整
func TestSellRefundRoundsDown(t *testing.T) {
	sim, _ := newTestSim(t, 2)
	// 光束兵 450 × 0.7 = 315；火焰兵 350 × 0.7 在浮点下略小于 245，取整为 244
	tests := []struct {
		kind types.TowerKind
		want int
	}{
		{types.TowerLaser, 315},
		{types.TowerPyro, 244},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			id, err := sim.PlaceTower(tt.kind, 700, 40)
			if err != nil {
				t.Fatalf("PlaceTower failed: %v", err)
			}
			if got, _ := sim.SellValue(id); got != tt.want {
				t.Errorf("SellValue() = %d, want %d", got, tt.want)
			}
			sim.SellTower(id)
		})
	}
}

// TestSetSpeedMultiplier 测试速度倍率
func TestSetSpeedMultiplier(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{MaxSpeedMultiplier, false},
		{MaxSpeedMultiplier + 1, true},
		{-1, true},
	}
	sim, _ := newTestSim(t, 1)
	for _, tt := range tests {
		err := sim.SetSpeedMultiplier(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("SetSpeedMultiplier(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidSpeed) {
			t.Errorf("SetSpeedMultiplier(%d) error = %v, want ErrInvalidSpeed", tt.n, err)
		}
	}

	sim.SetSpeedMultiplier(2)
	sim.Advance()
	if sim.Tick() != 2 {
		t.Errorf("Tick() = %d after one advance at x2, want 2", sim.Tick())
	}
}

// TestStartNextWave 测试波次进行中拒绝再次开始
func TestStartNextWave(t *testing.T) {
	sim, rec := newTestSim(t, 1)
	if !sim.StartNextWave() {
		t.Fatal("StartNextWave() = false, want true")
	}
	if sim.StartNextWave() {
		t.Error("StartNextWave() during an active wave should be rejected")
	}
	if rec.Count(event.WaveStarted) != 1 || lastNotice(rec) != "Wave 1" {
		t.Errorf("WaveStarted=%d notice=%q", rec.Count(event.WaveStarted), lastNotice(rec))
	}
}

// TestStepStopsWhenFinished 测试结束后不再推进
func TestStepStopsWhenFinished(t *testing.T) {
	sim, _ := newTestSim(t, 1)
	sim.Step()
	sim.state.GameOver = true
	sim.Step()
	sim.Advance()
	if sim.Tick() != 1 {
		t.Errorf("Tick() = %d, want 1", sim.Tick())
	}
}

// TestWaveWithTowers 测试带防御塔完整打完第一波
func TestWaveWithTowers(t *testing.T) {
	sim, rec := newTestSim(t, 1)
	for _, p := range [][2]float64{{150, 150}, {250, 150}, {350, 300}, {450, 450}} {
		if _, err := sim.PlaceTower(types.TowerRifleman, p[0], p[1]); err != nil {
			t.Fatalf("PlaceTower(%v) failed: %v", p, err)
		}
	}
	sim.StartNextWave()

	for i := 0; i < 20000 && sim.WaveActive(); i++ {
		sim.Step()
	}
	if sim.WaveActive() {
		t.Fatal("wave 1 did not finish")
	}
	cleared := rec.OfType(event.WaveCleared)
	if len(cleared) != 1 || cleared[0].Data.(event.WaveClearedData).Bonus != 115 {
		t.Errorf("WaveCleared events = %+v", cleared)
	}
	if rec.Count(event.EnemyDefeated) == 0 {
		t.Error("towers should defeat at least one walker")
	}
	if rec.Count(event.TowerFired) == 0 {
		t.Error("towers never fired")
	}
}

// TestDeterminism 测试相同种子与命令得到相同结果
func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		sim, err := New(loadTestContent(t), 3, 7)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		sim.state.Money = 100000
		// 第 25 波起护盾有随机层数
		sim.state.Wave = 24
		sim.PlaceTower(types.TowerChemist, 380, 400)
		sim.PlaceTower(types.TowerTrumpeter, 420, 450)
		sim.PlaceTower(types.TowerRailgun, 700, 560)
		sim.StartNextWave()
		for i := 0; i < 1500; i++ {
			sim.Step()
		}
		return sim.Snapshot()
	}

	a, b := run(), run()
	if len(a.Enemies) == 0 {
		t.Fatal("expected enemies on the field")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed diverged")
	}
}
