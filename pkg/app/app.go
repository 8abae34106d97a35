// Package app 提供桌面查看器的 ebiten 包装
//
// App 在每个宿主帧按速度倍率推进模拟，把键盘和鼠标输入翻译成模拟命令，
// 并从只读快照绘制画面。模拟本身不依赖本包。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/game"
	"github.com/decker502/zombie-defense/pkg/simulation"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// 逻辑屏幕尺寸，与模拟场地一致
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// AppName gdata 存档目录名
const AppName = "zombie-defense"

// noticeFrames 提示文本显示的帧数
const noticeFrames = 120

// 顶部状态栏与底部塔栏的点击区域
const (
	hudBarHeight   = 30
	towerSlotWidth = 140
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 关卡 ID
	Level int
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// SaveSlot F5/F9 使用的存档槽位
	SaveSlot string
	// ContentDir 内容表目录，默认 "data"（嵌入文件系统）
	ContentDir string
}

// notice 屏幕上的提示
type notice struct {
	text   string
	level  event.NoticeLevel
	frames int
}

// App 实现 ebiten.Game 接口
type App struct {
	sim   *simulation.Simulation
	store *game.SaveStore
	slot  string

	towers   []types.TowerKind // 本关可建造的塔，按键 1-4 选择
	selected int

	notices []notice

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化查看器
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入内容。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	dir := cfg.ContentDir
	if dir == "" {
		dir = "data"
	}
	content, err := config.LoadContent(dir)
	if err != nil {
		return nil, fmt.Errorf("内容表加载失败: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim, err := simulation.New(content, cfg.Level, seed)
	if err != nil {
		return nil, fmt.Errorf("模拟创建失败: %w", err)
	}

	slot := cfg.SaveSlot
	if slot == "" {
		slot = "quicksave"
	}

	a := &App{
		sim:   sim,
		store: game.OpenSaveStore(AppName),
		slot:  slot,
	}
	a.towers = append(a.towers, sim.Level().Towers...)
	sim.Subscribe(event.NoticeRaised, event.ListenerFunc(a.onNotice))

	log.Printf("[App] Level %d started, save slot %q (storage available: %v)", cfg.Level, slot, a.store.Available())
	return a, nil
}

func (a *App) onNotice(e event.Event) {
	data, ok := e.Data.(event.NoticeData)
	if !ok {
		return
	}
	a.pushNotice(data.Text, data.Level)
}

func (a *App) pushNotice(text string, level event.NoticeLevel) {
	a.notices = append(a.notices, notice{text: text, level: level, frames: noticeFrames})
	if len(a.notices) > 4 {
		a.notices = a.notices[len(a.notices)-4:]
	}
}

// Update 处理输入并推进模拟
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.handleInput()
	a.sim.Advance()

	kept := a.notices[:0]
	for _, n := range a.notices {
		n.frames--
		if n.frames > 0 {
			kept = append(kept, n)
		}
	}
	a.notices = kept
	return nil
}

func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.sim.StartNextWave()
	}

	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4} {
		if i < len(a.towers) && inpututil.IsKeyJustPressed(key) {
			a.selected = i
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		next := 1
		if a.sim.SpeedMultiplier() == 1 {
			next = 2
		}
		a.sim.SetSpeedMultiplier(next)
	}

	cx, cy := pointerPosition()
	x, y := float64(cx), float64(cy)

	if clicked, px, py := justTouchedOrClicked(); clicked {
		a.handleTap(px, py)
	}

	if id, ok := a.sim.TowerAt(x, y, a.sim.Rules().TowerSpacing/2); ok {
		if inpututil.IsKeyJustPressed(ebiten.KeyU) {
			if err := a.sim.UpgradeTower(id); errors.Is(err, simulation.ErrMaxTier) {
				a.pushNotice("Max Level", event.NoticeWarning)
			}
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			a.sim.SellTower(id)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.sim.Save(a.store, a.slot); err != nil {
			log.Printf("[App] Save failed: %v", err)
			a.pushNotice("Save failed", event.NoticeError)
		} else {
			a.pushNotice("Game saved", event.NoticeSuccess)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if err := a.sim.Load(a.store, a.slot); err != nil {
			log.Printf("[App] Load failed: %v", err)
			a.pushNotice("Load failed", event.NoticeError)
		} else {
			a.towers = append(a.towers[:0], a.sim.Level().Towers...)
			a.selected = 0
			a.pushNotice("Game loaded", event.NoticeSuccess)
		}
	}
}

// handleTap 顶部状态栏开始下一波，底部塔栏选择塔，其余位置建造
func (a *App) handleTap(px, py int) {
	switch {
	case py < hudBarHeight:
		a.sim.StartNextWave()
	case py > ScreenHeight-hudBarHeight:
		if slot := px / towerSlotWidth; slot < len(a.towers) {
			a.selected = slot
		}
	case len(a.towers) > 0:
		// 拒绝原因已经通过提示事件显示
		if _, err := a.sim.PlaceTower(a.towers[a.selected], float64(px), float64(py)); err != nil {
			log.Printf("[App] Place rejected: %v", err)
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	snap := a.sim.Snapshot()
	drawPath(screen, a.sim.Level())
	drawPuddles(screen, snap.Puddles)
	drawTowers(screen, snap.Towers)
	drawEnemies(screen, snap.Enemies)
	drawProjectiles(screen, snap.Projectiles)
	drawEffects(screen, snap.Effects)
	a.drawHUD(screen, snap)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Simulation 返回正在运行的模拟
func (a *App) Simulation() *simulation.Simulation {
	return a.sim
}
