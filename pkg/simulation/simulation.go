// Package simulation 组装一局塔防模拟
//
// Simulation 持有唯一的 SimulationState，按固定阶段顺序推进逻辑帧，
// 并对外提供命令（建造、升级、出售、开始波次、调整速度）、只读快照、
// 事件订阅以及存档的序列化与恢复。所有方法都应在同一个 goroutine 中调用。
package simulation

import (
	"fmt"
	"log"

	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/systems"
)

// MaxSpeedMultiplier 每个宿主帧最多推进的逻辑帧数
const MaxSpeedMultiplier = 4

// pipeline 绑定在同一个状态上的全部系统
type pipeline struct {
	modifiers   *systems.ModifierSystem
	waves       *systems.WaveSpawnSystem
	puddles     *systems.PuddleSystem
	enemies     *systems.EnemySystem
	towers      *systems.TowerSystem
	projectiles *systems.ProjectileSystem
	effects     *systems.EffectSystem
	cull        *systems.CullSystem
}

func newPipeline(state *game.SimulationState) *pipeline {
	return &pipeline{
		modifiers:   systems.NewModifierSystem(state),
		waves:       systems.NewWaveSpawnSystem(state),
		puddles:     systems.NewPuddleSystem(state),
		enemies:     systems.NewEnemySystem(state),
		towers:      systems.NewTowerSystem(state),
		projectiles: systems.NewProjectileSystem(state),
		effects:     systems.NewEffectSystem(state),
		cull:        systems.NewCullSystem(state),
	}
}

// Simulation 一局模拟
type Simulation struct {
	content *config.Content
	seed    int64
	events  *event.Dispatcher

	state *game.SimulationState
	sys   *pipeline

	speed int
}

// New 创建指定关卡的模拟
// 参数：
//   - content: 已校验的内容表
//   - levelID: 关卡 ID
//   - seed: 随机种子，相同种子与相同命令序列得到相同结果
func New(content *config.Content, levelID int, seed int64) (*Simulation, error) {
	events := event.NewDispatcher()
	state, err := game.NewSimulationState(content, levelID, seed, events)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}

	log.Printf("[Simulation] Level %d (%s) ready: money=%d lives=%d waves=%d",
		state.Level.ID, state.Level.Name, state.Money, state.Lives, state.Level.Waves)

	return &Simulation{
		content: content,
		seed:    seed,
		events:  events,
		state:   state,
		sys:     newPipeline(state),
		speed:   1,
	}, nil
}

// install 切换到新的状态（恢复存档时使用）
func (sim *Simulation) install(state *game.SimulationState) {
	sim.state = state
	sim.sys = newPipeline(state)
}

// Step 推进一个逻辑帧
//
// 阶段顺序：
//  1. 清除临时修正（速度、塔的加成累加器）
//  2. 波次调度
//  3. 酸液池，然后敌人自身更新
//  4. 防御塔（辅助塔先广播）
//  5. 弹道，然后视觉提示
//  6. 帧末结算与清理
//
// 胜利或失败后调用无效果。
func (sim *Simulation) Step() {
	if sim.state.Finished() {
		return
	}
	sys := sim.sys

	sys.modifiers.Update()
	sys.waves.Update()
	sys.puddles.Update()
	sys.enemies.Update()
	sys.towers.Update()
	sys.projectiles.Update()
	sys.effects.Update()
	sys.cull.Update()

	sim.state.Tick++
}

// Advance 按速度倍率推进一个宿主帧
func (sim *Simulation) Advance() {
	for i := 0; i < sim.speed && !sim.state.Finished(); i++ {
		sim.Step()
	}
}

// Subscribe 订阅指定类型的事件
func (sim *Simulation) Subscribe(eventType event.EventType, listener event.Listener) {
	sim.events.Subscribe(eventType, listener)
}

// SubscribeAll 订阅全部事件
func (sim *Simulation) SubscribeAll(listener event.Listener) {
	sim.events.SubscribeAll(listener)
}

// Tick 已推进的逻辑帧数
func (sim *Simulation) Tick() uint64 {
	return sim.state.Tick
}

// Finished 是否已经胜利或失败
func (sim *Simulation) Finished() bool {
	return sim.state.Finished()
}

// Victory 是否已经胜利
func (sim *Simulation) Victory() bool {
	return sim.state.Victory
}

// GameOver 是否已经失败
func (sim *Simulation) GameOver() bool {
	return sim.state.GameOver
}

// WaveActive 是否有波次正在进行
func (sim *Simulation) WaveActive() bool {
	return sim.state.WaveActive
}

// Wave 最近一次开始的波次
func (sim *Simulation) Wave() int {
	return sim.state.Wave
}

// Waves 本关总波次
func (sim *Simulation) Waves() int {
	return sim.state.Level.Waves
}

// Money 当前金钱
func (sim *Simulation) Money() int {
	return sim.state.Money
}

// Lives 剩余生命
func (sim *Simulation) Lives() int {
	return sim.state.Lives
}

// Level 当前关卡配置
func (sim *Simulation) Level() *config.LevelConfig {
	return sim.state.Level
}

// Rules 模拟常量
func (sim *Simulation) Rules() *config.SimulationRules {
	return sim.state.Rules
}

// SpeedMultiplier 当前速度倍率
func (sim *Simulation) SpeedMultiplier() int {
	return sim.speed
}
