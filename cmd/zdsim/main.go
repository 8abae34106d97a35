// zdsim 无界面运行一局塔防模拟，逐波自动开始，结束后打印战报
//
// 用法示例：
//
//	go run ./cmd/zdsim -level 1 -tower rifleman@150,200 -tower sniper@450,300 -waves 5
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/embedded"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/simulation"
)

// maxTicks 单局帧数上限，防止布局无法结束时死循环
const maxTicks = 2_000_000

var (
	root    = flag.String("root", ".", "内容表所在的根目录（包含 data/）")
	level   = flag.Int("level", 1, "关卡编号")
	seed    = flag.Int64("seed", 1, "随机种子")
	speed   = flag.Int("speed", simulation.MaxSpeedMultiplier, "每次推进的帧数倍率")
	waves   = flag.Int("waves", 0, "最多运行的波数（0 表示全部）")
	slot    = flag.String("save", "", "结束后写入的存档槽位（为空则不保存）")
	dump    = flag.Bool("dump", false, "结束后以 YAML 打印存档内容")
	verbose = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	var towers placementList
	flag.Var(&towers, "tower", "开局建造的塔，格式 kind@x,y（可重复）")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(towers); err != nil {
		fmt.Fprintf(os.Stderr, "zdsim: %v\n", err)
		os.Exit(1)
	}
}

func run(towers placementList) error {
	embedded.Init(os.DirFS(*root))

	content, err := config.LoadContent("data")
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	sim, err := simulation.New(content, *level, *seed)
	if err != nil {
		return err
	}
	if err := sim.SetSpeedMultiplier(*speed); err != nil {
		return err
	}

	for _, p := range towers {
		if _, err := sim.PlaceTower(p.kind, p.x, p.y); err != nil {
			return fmt.Errorf("place %s at (%g, %g): %w", p.kind, p.x, p.y, err)
		}
	}

	counts := make(map[event.EventType]int)
	sim.SubscribeAll(event.ListenerFunc(func(e event.Event) {
		counts[e.Type]++
		if e.Type == event.WaveCleared {
			if data, ok := e.Data.(event.WaveClearedData); ok {
				fmt.Printf("wave %2d cleared  bonus $%d  tick %d\n", data.Wave, data.Bonus, sim.Tick())
			}
		}
	}))

	limit := *waves
	if limit <= 0 || limit > sim.Waves() {
		limit = sim.Waves()
	}

	for !sim.Finished() && sim.Tick() < maxTicks {
		if !sim.WaveActive() {
			if sim.Wave() >= limit || !sim.StartNextWave() {
				break
			}
		}
		sim.Advance()
	}

	report(sim, counts)

	if *dump {
		out, err := game.ExportYAML(sim.SaveData())
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Printf("\n%s", out)
	}

	if *slot != "" {
		store := game.OpenSaveStore("zombie-defense")
		if err := sim.Save(store, *slot); err != nil {
			return fmt.Errorf("save: %w", err)
		}
		fmt.Printf("saved to slot %q\n", *slot)
	}
	return nil
}

func report(sim *simulation.Simulation, counts map[event.EventType]int) {
	outcome := "stopped"
	switch {
	case sim.Victory():
		outcome = "victory"
	case sim.GameOver():
		outcome = "defeat"
	}

	fmt.Printf("\nlevel %d  %s  wave %d/%d  lives %d  money $%d  ticks %d\n",
		sim.Level().ID, outcome, sim.Wave(), sim.Waves(), sim.Lives(), sim.Money(), sim.Tick())

	snap := sim.Snapshot()
	for _, t := range snap.Towers {
		fmt.Printf("  %-10s tier %d  kills %4d  spent $%d\n", t.Kind, t.Tier, t.Kills, t.TotalSpent)
	}

	names := make([]string, 0, len(counts))
	for et := range counts {
		names = append(names, string(et))
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %d\n", name, counts[event.EventType(name)])
	}
}
