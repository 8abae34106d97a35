package systems

import (
	"log"

	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
)

// WaveSpawnSystem 波次调度
// 职责：
// - 开始波次时把波次组成展开为扁平的生成队列
// - 波次进行中按队首的间隔逐个生成敌人
// - 队列耗尽且场上没有存活敌人时结算清空奖励或胜利
type WaveSpawnSystem struct {
	state *game.SimulationState
}

// NewWaveSpawnSystem 创建波次调度系统
func NewWaveSpawnSystem(state *game.SimulationState) *WaveSpawnSystem {
	return &WaveSpawnSystem{state: state}
}

// StartWave 开始下一波
// 波次进行中、全部波次已完成或已结束时拒绝（返回 false，不修改状态）
func (s *WaveSpawnSystem) StartWave() bool {
	st := s.state
	if st.Finished() || st.WaveActive || st.Wave >= st.Level.Waves {
		return false
	}

	plan, ok := st.Level.WavePlan(st.Wave + 1)
	if !ok {
		log.Printf("[WaveSpawnSystem] Warning: No wave rule for level %d wave %d", st.Level.ID, st.Wave+1)
		return false
	}

	st.Queue = plan.Queue()
	st.FrameTimer = 0
	st.WaveActive = true
	st.Wave++

	log.Printf("[WaveSpawnSystem] Wave %d started, %d spawns queued", st.Wave, len(st.Queue))
	st.Emit(event.WaveStarted, event.WaveStartedData{
		Wave:    st.Wave,
		Message: plan.Message,
		Spawns:  len(st.Queue),
	})
	st.Notice(event.NoticeInfo, "%s", plan.Message)
	return true
}

// Update 推进一帧
func (s *WaveSpawnSystem) Update() {
	st := s.state
	if !st.WaveActive {
		return
	}

	st.FrameTimer++
	if len(st.Queue) > 0 {
		next := st.Queue[0]
		if st.FrameTimer >= next.Interval {
			origin := st.Level.Path[0]
			if _, err := SpawnEnemy(st, next.Kind, origin.X, origin.Y, 0); err != nil {
				log.Printf("[WaveSpawnSystem] Warning: %v", err)
			}
			st.Queue = st.Queue[1:]
			st.FrameTimer = 0
		}
		return
	}

	if st.AliveEnemies() == 0 {
		s.endWave()
	}
}

// endWave 波次清空：最后一波判定胜利，否则发放奖励
func (s *WaveSpawnSystem) endWave() {
	st := s.state
	st.WaveActive = false
	st.Queue = nil

	if st.IsFinalWave() {
		st.Victory = true
		log.Printf("[WaveSpawnSystem] Victory on level %d after wave %d", st.Level.ID, st.Wave)
		st.Emit(event.Victory, event.VictoryData{Level: st.Level.ID, Wave: st.Wave})
		return
	}

	bonus := st.Level.WaveBonus(st.Wave)
	st.Money += bonus
	log.Printf("[WaveSpawnSystem] Wave %d cleared, bonus %d", st.Wave, bonus)
	st.Emit(event.WaveCleared, event.WaveClearedData{Wave: st.Wave, Bonus: bonus})
	st.Notice(event.NoticeSuccess, "Cleared! +$%d", bonus)
}
