package simulation

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// TestCorePackagesAvoidEbiten 模拟核心及其依赖的包不能引入 ebiten，
// 否则无界面环境（无 X11、CGO_ENABLED=0）无法构建
func TestCorePackagesAvoidEbiten(t *testing.T) {
	dirs := []string{
		".",
		"../components",
		"../config",
		"../ecs",
		"../embedded",
		"../entities",
		"../event",
		"../game",
		"../systems",
		"../types",
		"../utils",
		"../../cmd/zdsim",
	}

	for _, dir := range dirs {
		t.Run(filepath.Base(dir), func(t *testing.T) {
			files, err := filepath.Glob(filepath.Join(dir, "*.go"))
			if err != nil {
				t.Fatalf("Glob(%s) failed: %v", dir, err)
			}
			if len(files) == 0 {
				t.Fatalf("no Go files in %s", dir)
			}
			for _, file := range files {
				if strings.HasSuffix(file, "_test.go") {
					continue
				}
				src, err := os.ReadFile(file)
				if err != nil {
					t.Fatalf("ReadFile(%s) failed: %v", file, err)
				}
				f, err := parser.ParseFile(token.NewFileSet(), file, src, parser.ImportsOnly)
				if err != nil {
					t.Fatalf("ParseFile(%s) failed: %v", file, err)
				}
				for _, imp := range f.Imports {
					path, _ := strconv.Unquote(imp.Path.Value)
					if strings.HasPrefix(path, "github.com/hajimehoshi/ebiten") {
						t.Errorf("%s imports %s", file, path)
					}
				}
			}
		})
	}
}
