package game

import (
	"time"

	"github.com/decker502/zombie-defense/pkg/types"
)

// SaveVersion 存档版本号
// 用于版本兼容性检查，当数据结构发生不兼容变更时递增
const SaveVersion = 1

// SaveData 可恢复的关卡进度
//
// 只记录波次边界上的状态：进行中的波次、存活敌人和飞行中的弹道都不保存，
// 读档后总是停在"上一波已清空、下一波未开始"的位置。
type SaveData struct {
	// 版本和元数据
	Version  int       `yaml:"version"`
	SaveTime time.Time `yaml:"saveTime"`

	Level int `yaml:"level"`
	Money int `yaml:"money"`
	Lives int `yaml:"lives"`
	Wave  int `yaml:"wave"` // 已完成的波次数

	Towers []TowerSaveData `yaml:"towers"`
}

// TowerSaveData 防御塔存档数据
// 属性不直接保存：读档时按 Kind 和 Tier 从内容表重新应用升级。
type TowerSaveData struct {
	Kind       types.TowerKind `yaml:"kind"`
	X          float64         `yaml:"x"`
	Y          float64         `yaml:"y"`
	Tier       int             `yaml:"tier"`
	TotalSpent int             `yaml:"totalSpent"`
	Kills      int             `yaml:"kills"`
}

// NewSaveData 创建带版本号的空存档
func NewSaveData() *SaveData {
	return &SaveData{
		Version: SaveVersion,
		Towers:  make([]TowerSaveData, 0),
	}
}
