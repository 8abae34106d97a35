package game

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/zombie-defense/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// ErrStorageUnavailable 跨平台存储未初始化（降级模式）
var ErrStorageUnavailable = errors.New("save storage unavailable")

// 存档在 gdata 中的对象名，槽位名作为属性名
const savesObject = "saves"

// SaveStore 基于 gdata 的存档槽位
//
// gdataManager 为 nil 时进入降级模式：Exists 返回 false，
// Save 与 Load 返回 ErrStorageUnavailable，模拟本身不受影响。
type SaveStore struct {
	gdataManager *gdata.Manager
}

// NewSaveStore 创建存档槽位管理器
func NewSaveStore(gdataManager *gdata.Manager) *SaveStore {
	return &SaveStore{gdataManager: gdataManager}
}

// OpenSaveStore 按应用名打开 gdata 存储
// 打开失败不是致命错误，返回降级模式的 SaveStore
func OpenSaveStore(appName string) *SaveStore {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[SaveStore] Warning: %v", err)
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SaveStore] Warning: Failed to open storage %q: %v (saves disabled)", appName, err)
		return NewSaveStore(nil)
	}
	return NewSaveStore(manager)
}

// Available 是否可以持久化
func (s *SaveStore) Available() bool {
	return s != nil && s.gdataManager != nil
}

// Exists 槽位是否已有存档
func (s *SaveStore) Exists(slot string) bool {
	if !s.Available() {
		return false
	}
	return s.gdataManager.ObjectPropExists(savesObject, slot)
}

// Save 将存档二进制写入槽位
func (s *SaveStore) Save(slot string, blob []byte) error {
	if !s.Available() {
		return ErrStorageUnavailable
	}
	if err := s.gdataManager.SaveObjectProp(savesObject, slot, blob); err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	log.Printf("[SaveStore] Saved slot %s (%d bytes)", slot, len(blob))
	return nil
}

// Load 读取槽位中的存档二进制
func (s *SaveStore) Load(slot string) ([]byte, error) {
	if !s.Available() {
		return nil, ErrStorageUnavailable
	}
	if !s.gdataManager.ObjectPropExists(savesObject, slot) {
		return nil, fmt.Errorf("save slot %s does not exist", slot)
	}
	blob, err := s.gdataManager.LoadObjectProp(savesObject, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	log.Printf("[SaveStore] Loaded slot %s (%d bytes)", slot, len(blob))
	return blob, nil
}
