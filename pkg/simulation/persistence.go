package simulation

import (
	"fmt"
	"log"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"github.com/decker502/zombie-defense/pkg/entities"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/systems"
)

// SaveData 收集当前状态的存档数据
// 波次进行中保存时回退到上一个已清空的波次。
func (sim *Simulation) SaveData() *game.SaveData {
	return sim.state.Snapshot()
}

// Serialize 把当前状态编码为存档
func (sim *Simulation) Serialize() ([]byte, error) {
	return game.Encode(sim.state.Snapshot())
}

// Deserialize 从存档恢复
//
// 存档可以属于任意已知关卡。恢复总是从已清空的波次边界开始：
// 场上没有敌人和弹道，只有存档中的防御塔。
// 存档无效时返回 game.ErrCorruptSave，当前状态保持不变。
func (sim *Simulation) Deserialize(blob []byte) error {
	data, err := game.Decode(blob)
	if err != nil {
		return err
	}
	return sim.Restore(data)
}

// Restore 从已解码的存档数据恢复，语义同 Deserialize
func (sim *Simulation) Restore(data *game.SaveData) error {
	state, err := sim.restore(data)
	if err != nil {
		return err
	}
	sim.install(state)
	log.Printf("[Simulation] Restored level %d wave %d: money=%d lives=%d towers=%d",
		data.Level, data.Wave, data.Money, data.Lives, len(data.Towers))
	return nil
}

// restore 在全新的状态上重建存档，出错时丢弃该状态
func (sim *Simulation) restore(data *game.SaveData) (*game.SimulationState, error) {
	state, err := game.NewSimulationState(sim.content, data.Level, sim.seed, sim.events)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", game.ErrCorruptSave, err)
	}
	if data.Wave > state.Level.Waves {
		return nil, fmt.Errorf("%w: wave %d exceeds %d waves of level %d", game.ErrCorruptSave, data.Wave, state.Level.Waves, data.Level)
	}

	state.Money = data.Money
	state.Lives = data.Lives
	state.Wave = data.Wave

	for i, saved := range data.Towers {
		archetype, ok := sim.content.Towers.Get(saved.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: tower %d has unknown kind %q", game.ErrCorruptSave, i, saved.Kind)
		}
		id, err := entities.NewTowerEntity(state.EM, sim.content.Towers, saved.Kind, saved.X, saved.Y)
		if err != nil {
			return nil, fmt.Errorf("%w: tower %d: %v", game.ErrCorruptSave, i, err)
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](state.EM, id)
		if err := entities.RestoreTier(tower, archetype, saved.Tier); err != nil {
			return nil, fmt.Errorf("%w: tower %d: %v", game.ErrCorruptSave, i, err)
		}
		tower.TotalSpent = saved.TotalSpent
		tower.Kills = saved.Kills
	}

	systems.RefreshBuffs(state)
	return state, nil
}

// Save 序列化并写入存档槽
func (sim *Simulation) Save(store *game.SaveStore, slot string) error {
	blob, err := sim.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize: %w", err)
	}
	return store.Save(slot, blob)
}

// Load 从存档槽读取并恢复
func (sim *Simulation) Load(store *game.SaveStore, slot string) error {
	blob, err := store.Load(slot)
	if err != nil {
		return err
	}
	return sim.Deserialize(blob)
}
