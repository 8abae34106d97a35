package main

import (
	"flag"
	"log"

	"github.com/decker502/zombie-defense/pkg/app"
	"github.com/decker502/zombie-defense/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	level   = flag.Int("level", 1, "关卡 ID")
	seed    = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	slot    = flag.String("slot", "quicksave", "F5/F9 使用的存档槽位")
)

func main() {
	flag.Parse()

	// 必须在加载任何内容表之前初始化
	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Level:    *level,
		Seed:     *seed,
		SaveSlot: *slot,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Zombie Defense")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
