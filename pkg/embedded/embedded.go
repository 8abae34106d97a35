// Package embedded 提供嵌入内容表的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的内容表。
//
// 以 "data/" 开头的路径在初始化后从嵌入文件系统读取；
// 其余路径（绝对路径、测试临时目录）直接读取磁盘文件。
package embedded

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 初始化内容文件系统
// 必须在 main() 开始时、任何内容加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// Reset 取消初始化（测试使用）
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 标准化路径，返回 embed.FS 使用的正斜杠形式
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// isEmbeddedPath 路径是否应当从嵌入文件系统读取
func isEmbeddedPath(path string) bool {
	return strings.HasPrefix(path, dataPrefix)
}

// Open 打开内容文件
func Open(path string) (fs.File, error) {
	path = normalize(path)
	if isEmbeddedPath(path) {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return dataFS.Open(path)
	}
	return os.Open(filepath.FromSlash(path))
}

// ReadFile 读取内容文件
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if isEmbeddedPath(path) {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return fs.ReadFile(dataFS, path)
	}
	return os.ReadFile(filepath.FromSlash(path))
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// ReadDir 读取目录内容
func ReadDir(path string) ([]fs.DirEntry, error) {
	path = normalize(path)
	if isEmbeddedPath(path) || path == "data" {
		if !initialized {
			return nil, fmt.Errorf("embedded package not initialized, call Init() first")
		}
		return fs.ReadDir(dataFS, path)
	}
	return os.ReadDir(filepath.FromSlash(path))
}
