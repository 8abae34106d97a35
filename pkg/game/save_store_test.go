package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
)

// createTestGdataManager 创建用于测试的 gdata Manager
func createTestGdataManager(t *testing.T, testName string) *gdata.Manager {
	appName := fmt.Sprintf("zd_store_test_%s_%d", testName, time.Now().UnixNano())
	manager, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil
	}

	// 注册清理函数，测试结束后删除测试目录
	t.Cleanup(func() {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			os.RemoveAll(filepath.Join(homeDir, ".local", "share", appName))
		}
	})

	return manager
}

// TestSaveStoreRoundTrip 测试写入后读取槽位
func TestSaveStoreRoundTrip(t *testing.T) {
	manager := createTestGdataManager(t, "roundtrip")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}
	store := NewSaveStore(manager)

	if store.Exists("slot1") {
		t.Fatal("fresh store should not have slot1")
	}

	blob, err := Encode(sampleSaveData())
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if err := store.Save("slot1", blob); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !store.Exists("slot1") {
		t.Fatal("slot1 should exist after Save")
	}

	loaded, err := store.Load("slot1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	data, err := Decode(loaded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if data.Money != 1234 || data.Wave != 7 {
		t.Errorf("loaded Money=%d Wave=%d, want 1234 and 7", data.Money, data.Wave)
	}
}

// TestSaveStoreMissingSlot 测试读取不存在的槽位
func TestSaveStoreMissingSlot(t *testing.T) {
	manager := createTestGdataManager(t, "missing")
	if manager == nil {
		t.Skip("Cannot create gdata manager for testing")
	}
	store := NewSaveStore(manager)

	if _, err := store.Load("nope"); err == nil {
		t.Error("expected error for missing slot")
	}
}

// TestSaveStoreNilSafe 测试降级模式
func TestSaveStoreNilSafe(t *testing.T) {
	tests := []struct {
		name  string
		store *SaveStore
	}{
		{"nil 管理器", NewSaveStore(nil)},
		{"nil 指针", nil},
	}

	for _, tt := range tests {
		store := tt.store
		t.Run(tt.name, func(t *testing.T) {
			if store.Available() {
				t.Error("degraded store should not be available")
			}
			if store.Exists("slot1") {
				t.Error("degraded store should report no slots")
			}
			if err := store.Save("slot1", []byte{1}); !errors.Is(err, ErrStorageUnavailable) {
				t.Errorf("Save error = %v, want ErrStorageUnavailable", err)
			}
			if _, err := store.Load("slot1"); !errors.Is(err, ErrStorageUnavailable) {
				t.Errorf("Load error = %v, want ErrStorageUnavailable", err)
			}
		})
	}
}
