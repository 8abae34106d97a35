package game

import (
	"fmt"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/utils"
)

// SimulationState 一局模拟的全部可变状态
//
// 所有系统都通过参数接收它，不存在包级全局状态。
// 实体（敌人、塔、弹道、酸液池、视觉提示）存放在 EM 中，
// 经济与波次等标量直接存放在这里。
type SimulationState struct {
	Content *config.Content
	Rules   *config.SimulationRules
	Level   *config.LevelConfig

	EM     *ecs.EntityManager
	Events *event.Dispatcher
	RNG    *utils.PRNGService

	Money int
	Lives int

	// Wave 最近一次开始的波次编号，0 表示尚未开始
	Wave       int
	WaveActive bool
	Queue      []config.SpawnEntry
	FrameTimer int

	GameOver bool
	Victory  bool

	Tick uint64
}

// NewSimulationState 为指定关卡创建初始状态
// 参数：
//   - content: 已校验的内容表
//   - levelID: 关卡 ID
//   - seed: 随机种子，0 表示使用当前时间
//   - events: 事件分发器，为 nil 时创建新的分发器
func NewSimulationState(content *config.Content, levelID int, seed int64, events *event.Dispatcher) (*SimulationState, error) {
	if content == nil {
		return nil, fmt.Errorf("content is nil")
	}
	level, ok := content.Levels.Level(levelID)
	if !ok {
		return nil, fmt.Errorf("unknown level %d", levelID)
	}
	if events == nil {
		events = event.NewDispatcher()
	}

	rules := content.Rules()
	return &SimulationState{
		Content: content,
		Rules:   rules,
		Level:   level,
		EM:      ecs.NewEntityManager(),
		Events:  events,
		RNG:     utils.NewPRNGService(seed),
		Money:   level.StartingMoney,
		Lives:   rules.StartingLives,
	}, nil
}

// Emit 以当前逻辑帧发出事件
func (s *SimulationState) Emit(eventType event.EventType, data interface{}) {
	s.Events.Dispatch(event.Event{Type: eventType, Tick: s.Tick, Data: data})
}

// Notice 发出面向玩家的提示
func (s *SimulationState) Notice(level event.NoticeLevel, format string, args ...interface{}) {
	s.Emit(event.NoticeRaised, event.NoticeData{Text: fmt.Sprintf(format, args...), Level: level})
}

// Finished 胜利或失败后模拟不再推进
func (s *SimulationState) Finished() bool {
	return s.GameOver || s.Victory
}

// IsFinalWave 当前波次是否为本关最后一波
func (s *SimulationState) IsFinalWave() bool {
	return s.Wave >= s.Level.Waves
}

// AliveEnemies 返回仍处于行进状态的敌人数量
func (s *SimulationState) AliveEnemies() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith2[*components.EnemyComponent, *components.HealthComponent](s.EM) {
		if s.IsEnemyAlive(id) {
			count++
		}
	}
	return count
}

// IsEnemyAlive 敌人存在、生命值为正、尚未抵达终点且未被标记删除
func (s *SimulationState) IsEnemyAlive(id ecs.EntityID) bool {
	if s.EM.IsMarkedForDestroy(id) {
		return false
	}
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.EM, id)
	if !ok || enemy.Arrived || enemy.Defeated {
		return false
	}
	health, ok := ecs.GetComponent[*components.HealthComponent](s.EM, id)
	return ok && health.Current > 0
}
