package game

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/ecs"
	"gopkg.in/yaml.v3"
)

// ErrCorruptSave 存档无法解码、版本不兼容或内容不合法
var ErrCorruptSave = errors.New("corrupt save data")

// Encode 将存档编码为 gob 二进制
func Encode(data *SaveData) ([]byte, error) {
	if data == nil {
		return nil, fmt.Errorf("save data is nil")
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode save data: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode 解码 gob 存档并做版本与数值检查
//
// 返回的错误都包装了 ErrCorruptSave，调用方可以用 errors.Is 区分
// "存档损坏"与其它失败。解码失败时不会返回部分数据。
func Decode(blob []byte) (*SaveData, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: empty blob", ErrCorruptSave)
	}

	var data SaveData
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: failed to decode save data: %v", ErrCorruptSave, err)
	}

	// 版本兼容性检查
	if data.Version != SaveVersion {
		return nil, fmt.Errorf("%w: incompatible save version: %d (expected %d)",
			ErrCorruptSave, data.Version, SaveVersion)
	}
	if err := validateSaveData(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return &data, nil
}

func validateSaveData(data *SaveData) error {
	if data.Money < 0 {
		return fmt.Errorf("money cannot be negative, got %d", data.Money)
	}
	if data.Lives <= 0 {
		return fmt.Errorf("lives must be positive, got %d", data.Lives)
	}
	if data.Wave < 0 {
		return fmt.Errorf("wave cannot be negative, got %d", data.Wave)
	}
	for i, t := range data.Towers {
		if t.Kind == "" {
			return fmt.Errorf("tower %d: kind is required", i)
		}
		if t.Tier < 0 {
			return fmt.Errorf("tower %d: tier cannot be negative", i)
		}
		if t.TotalSpent < 0 {
			return fmt.Errorf("tower %d: totalSpent cannot be negative", i)
		}
	}
	return nil
}

// ExportYAML 以 YAML 输出存档，便于人工查看
func ExportYAML(data *SaveData) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save data: %w", err)
	}
	return out, nil
}

// Snapshot 从当前状态收集存档数据
//
// 波次进行中保存时，Wave 回退到上一个已清空的波次，
// 与"读档总是停在波次边界"的约定一致。
func (s *SimulationState) Snapshot() *SaveData {
	data := NewSaveData()
	data.SaveTime = time.Now()
	data.Level = s.Level.ID
	data.Money = s.Money
	data.Lives = s.Lives
	data.Wave = s.Wave
	if s.WaveActive && data.Wave > 0 {
		data.Wave--
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TowerComponent, *components.PositionComponent](s.EM) {
		if s.EM.IsMarkedForDestroy(id) {
			continue
		}
		tower, _ := ecs.GetComponent[*components.TowerComponent](s.EM, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.EM, id)
		data.Towers = append(data.Towers, TowerSaveData{
			Kind:       tower.Kind,
			X:          pos.X,
			Y:          pos.Y,
			Tier:       tower.Tier,
			TotalSpent: tower.TotalSpent,
			Kills:      tower.Kills,
		})
	}

	log.Printf("[Serializer] Collected save: Level=%d, Money=%d, Lives=%d, Wave=%d, Towers=%d",
		data.Level, data.Money, data.Lives, data.Wave, len(data.Towers))
	return data
}
