package simulation

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/systems"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// 命令被拒绝的原因
// 被拒绝的命令不修改任何状态。
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidPlacement  = errors.New("invalid placement")
	ErrTowerNotAvailable = errors.New("tower not available on this level")
	ErrMaxTier           = errors.New("tower is already at max tier")
	ErrTowerNotFound     = errors.New("tower not found")
	ErrInvalidSpeed      = errors.New("invalid speed multiplier")
)

// CanPlace 纯查询：(x, y) 是否可以建造防御塔
//
// 规则：
//   - 与场地边界的距离不小于放置边距
//   - 与每一段路径（传送缺口除外）的距离不小于路径间隔
//   - 与其他防御塔的距离不小于塔间距
func (sim *Simulation) CanPlace(x, y float64) bool {
	s := sim.state
	r := s.Rules

	if x < r.PlacementMargin || x > r.Width-r.PlacementMargin ||
		y < r.PlacementMargin || y > r.Height-r.PlacementMargin {
		return false
	}

	path := s.Level.Path
	for i := 0; i+1 < len(path); i++ {
		if s.Level.IsTeleportGap(i) {
			continue
		}
		if utils.DistToSegment(x, y, path[i].X, path[i].Y, path[i+1].X, path[i+1].Y) < r.PathClearance {
			return false
		}
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.EM) {
		if s.EM.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		if utils.Distance(x, y, pos.X, pos.Y) < r.TowerSpacing {
			return false
		}
	}
	return true
}

// PlaceTower 在 (x, y) 建造防御塔
//
// 返回:
//   - ecs.EntityID: 新塔的实体ID
//   - error: ErrTowerNotAvailable、ErrInvalidPlacement 或 ErrInsufficientFunds
func (sim *Simulation) PlaceTower(kind types.TowerKind, x, y float64) (ecs.EntityID, error) {
	s := sim.state

	archetype, ok := s.Content.Towers.Get(kind)
	if !ok || !s.Level.AllowsTower(kind) {
		return ecs.InvalidEntity, fmt.Errorf("%w: %s", ErrTowerNotAvailable, kind)
	}
	if !sim.CanPlace(x, y) {
		s.Notice(event.NoticeError, "Invalid Placement!")
		return ecs.InvalidEntity, ErrInvalidPlacement
	}
	if s.Money < archetype.Cost {
		s.Notice(event.NoticeError, "Not enough cash!")
		return ecs.InvalidEntity, fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, kind, archetype.Cost, s.Money)
	}

	id, err := entities.NewTowerEntity(s.EM, s.Content.Towers, kind, x, y)
	if err != nil {
		return ecs.InvalidEntity, fmt.Errorf("failed to place tower: %w", err)
	}
	s.Money -= archetype.Cost
	systems.RefreshBuffs(s)

	log.Printf("[Simulation] Placed %s at (%.0f, %.0f), money left %d", kind, x, y, s.Money)
	s.Emit(event.TowerPlaced, event.TowerPlacedData{Entity: id, Kind: kind, X: x, Y: y, Cost: archetype.Cost})
	return id, nil
}

// tower 查找未被出售的防御塔
func (sim *Simulation) tower(id ecs.EntityID) (*components.TowerComponent, error) {
	s := sim.state
	tower, ok := ecs.GetComponent[*components.TowerComponent](s.EM, id)
	if !ok || s.EM.IsMarkedForDestroy(id) {
		return nil, fmt.Errorf("%w: %d", ErrTowerNotFound, id)
	}
	return tower, nil
}

// UpgradeTower 购买下一层升级
func (sim *Simulation) UpgradeTower(id ecs.EntityID) error {
	s := sim.state
	tower, err := sim.tower(id)
	if err != nil {
		return err
	}
	archetype, _ := s.Content.Towers.Get(tower.Kind)
	next, ok := archetype.NextUpgrade(tower.Tier)
	if !ok {
		return ErrMaxTier
	}
	if s.Money < next.Cost {
		s.Notice(event.NoticeError, "Not enough cash!")
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientFunds, next.Name, next.Cost, s.Money)
	}

	s.Money -= next.Cost
	entities.ApplyUpgradeTier(tower, next)
	systems.RefreshBuffs(s)

	log.Printf("[Simulation] Upgraded %s #%d to tier %d (%s)", tower.Kind, id, tower.Tier, next.Name)
	s.Notice(event.NoticeSuccess, "Upgraded!")
	s.Emit(event.TowerUpgraded, event.TowerUpgradedData{
		Entity:   id,
		Kind:     tower.Kind,
		Tier:     tower.Tier,
		TierName: next.Name,
		Cost:     next.Cost,
	})
	return nil
}

// SellValue 出售可返还的金钱：累计投入 × 返还比例，向下取整
func (sim *Simulation) SellValue(id ecs.EntityID) (int, error) {
	tower, err := sim.tower(id)
	if err != nil {
		return 0, err
	}
	return int(math.Floor(float64(tower.TotalSpent) * sim.state.Rules.SellRefund)), nil
}

// SellTower 出售防御塔并立即移除
// 以它为击杀来源的弹道仍会正常结算伤害，但不再记录击杀。
func (sim *Simulation) SellTower(id ecs.EntityID) (int, error) {
	s := sim.state
	refund, err := sim.SellValue(id)
	if err != nil {
		return 0, err
	}
	tower, _ := sim.tower(id)
	kind := tower.Kind

	s.Money += refund
	s.EM.DestroyEntity(id)
	s.EM.RemoveMarkedEntities()
	systems.RefreshBuffs(s)

	log.Printf("[Simulation] Sold %s #%d for %d", kind, id, refund)
	s.Notice(event.NoticeSuccess, "Sold for $%d", refund)
	s.Emit(event.TowerSold, event.TowerSoldData{Entity: id, Kind: kind, Refund: refund})
	return refund, nil
}

// TowerAt 返回距离 (x, y) 最近、且在 radius 以内的防御塔
func (sim *Simulation) TowerAt(x, y, radius float64) (ecs.EntityID, bool) {
	s := sim.state
	best := ecs.InvalidEntity
	bestDist := radius
	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.EM) {
		if s.EM.IsMarkedForDestroy(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		if d := utils.Distance(x, y, pos.X, pos.Y); d <= bestDist {
			bestDist = d
			best = id
		}
	}
	return best, best != ecs.InvalidEntity
}

// StartNextWave 开始下一波
// 波次进行中、全部波次已完成或已结束时静默拒绝，返回 false
func (sim *Simulation) StartNextWave() bool {
	return sim.sys.waves.StartWave()
}

// SetSpeedMultiplier 设置每个宿主帧推进的逻辑帧数（1 到 MaxSpeedMultiplier）
func (sim *Simulation) SetSpeedMultiplier(n int) error {
	if n < 1 || n > MaxSpeedMultiplier {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidSpeed, n, MaxSpeedMultiplier)
	}
	sim.speed = n
	return nil
}
