package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/zombie-defense/pkg/components"
	"github.com/decker502/zombie-defense/pkg/config"
	"github.com/decker502/zombie-defense/pkg/event"
	"github.com/decker502/zombie-defense/pkg/simulation"
	"github.com/decker502/zombie-defense/pkg/types"
	"github.com/decker502/zombie-defense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	colorGround   = color.RGBA{R: 34, G: 40, B: 38, A: 255}
	colorPath     = color.RGBA{R: 92, G: 80, B: 62, A: 255}
	colorPortal   = color.RGBA{R: 140, G: 90, B: 220, A: 255}
	colorHealth   = color.RGBA{R: 60, G: 200, B: 80, A: 255}
	colorHealthBg = color.RGBA{R: 120, G: 20, B: 20, A: 255}
	colorShield   = color.RGBA{R: 80, G: 180, B: 255, A: 255}
	colorRange    = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	colorPuddle   = color.RGBA{R: 90, G: 220, B: 60, A: 90}
	colorBuffed   = color.RGBA{R: 255, G: 210, B: 60, A: 255}
)

// hudFace HUD 使用的等宽位图字体
var hudFace = text.NewGoXFace(basicfont.Face7x13)

// drawText 以 (x, y) 为左上角绘制一行文本
func drawText(screen *ebiten.Image, str string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, hudFace, op)
}

// enemyColors 敌人种类的绘制颜色
var enemyColors = map[types.EnemyKind]color.RGBA{
	types.EnemyWalker:      {R: 110, G: 160, B: 90, A: 255},
	types.EnemyRunner:      {R: 200, G: 180, B: 70, A: 255},
	types.EnemyTank:        {R: 90, G: 100, B: 110, A: 255},
	types.EnemyBoss:        {R: 170, G: 40, B: 40, A: 255},
	types.EnemyCarrier:     {R: 120, G: 90, B: 60, A: 255},
	types.EnemyMiniCarrier: {R: 150, G: 120, B: 80, A: 255},
	types.EnemyVampire:     {R: 130, G: 20, B: 60, A: 255},
	types.EnemyNecromancer: {R: 60, G: 20, B: 90, A: 255},
	types.EnemyMutant:      {R: 150, G: 200, B: 40, A: 255},
	types.EnemyScientist:   {R: 230, G: 230, B: 230, A: 255},
}

// attackColors 攻击类型的绘制颜色（塔与弹道共用）
var attackColors = map[types.AttackKind]color.RGBA{
	types.AttackBullet:    {R: 240, G: 220, B: 120, A: 255},
	types.AttackSniper:    {R: 200, G: 200, B: 255, A: 255},
	types.AttackBomb:      {R: 60, G: 60, B: 60, A: 255},
	types.AttackAcid:      {R: 120, G: 230, B: 60, A: 255},
	types.AttackFlame:     {R: 255, G: 120, B: 20, A: 255},
	types.AttackLightning: {R: 140, G: 200, B: 255, A: 255},
	types.AttackBeam:      {R: 255, G: 60, B: 60, A: 255},
	types.AttackRail:      {R: 80, G: 240, B: 255, A: 255},
	types.AttackBuff:      {R: 255, G: 210, B: 60, A: 255},
}

var noticePrefix = map[event.NoticeLevel]string{
	event.NoticeInfo:    "",
	event.NoticeSuccess: "+ ",
	event.NoticeWarning: "! ",
	event.NoticeError:   "x ",
}

var noticeColors = map[event.NoticeLevel]color.Color{
	event.NoticeInfo:    color.White,
	event.NoticeSuccess: color.RGBA{R: 120, G: 240, B: 120, A: 255},
	event.NoticeWarning: color.RGBA{R: 255, G: 210, B: 60, A: 255},
	event.NoticeError:   color.RGBA{R: 255, G: 90, B: 90, A: 255},
}

// fade 按已经过的寿命比例降低透明度
func fade(c color.RGBA, progress float64) color.RGBA {
	alpha := utils.Lerp(float64(c.A), 0, utils.EaseInQuad(progress))
	c.A = uint8(math.Max(0, math.Min(255, alpha)))
	return c
}

func drawPath(screen *ebiten.Image, level *config.LevelConfig) {
	screen.Fill(colorGround)
	path := level.Path
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if level.IsTeleportGap(i) {
			vector.DrawFilledCircle(screen, float32(a.X), float32(a.Y), 18, colorPortal, true)
			vector.DrawFilledCircle(screen, float32(b.X), float32(b.Y), 18, colorPortal, true)
			continue
		}
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 40, colorPath, true)
	}
}

func drawPuddles(screen *ebiten.Image, puddles []simulation.PuddleView) {
	for _, p := range puddles {
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), fade(colorPuddle, p.Progress), true)
	}
}

func drawTowers(screen *ebiten.Image, towers []simulation.TowerView) {
	for _, t := range towers {
		clr := attackColors[t.Attack]
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(t.Range), 1, colorRange, true)
		vector.DrawFilledRect(screen, float32(t.X-12), float32(t.Y-12), 24, 24, clr, true)
		if t.Buffed {
			vector.StrokeRect(screen, float32(t.X-14), float32(t.Y-14), 28, 28, 2, colorBuffed, true)
		}
		if t.Attack != types.AttackBuff {
			ex, ey := utils.PointAt(t.X, t.Y, t.Angle, 18)
			vector.StrokeLine(screen, float32(t.X), float32(t.Y), float32(ex), float32(ey), 4, color.White, true)
		}
		if t.Charging {
			vector.StrokeCircle(screen, float32(t.X), float32(t.Y), 20, 2, attackColors[types.AttackRail], true)
		}
		drawText(screen, fmt.Sprintf("%d", t.Tier), int(t.X)-3, int(t.Y)-7, color.Black)
	}
}

func drawEnemies(screen *ebiten.Image, enemies []simulation.EnemyView) {
	for _, e := range enemies {
		clr, ok := enemyColors[e.Kind]
		if !ok {
			clr = color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		vector.DrawFilledCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius), clr, true)
		if e.Shield > 0 {
			vector.StrokeCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius+3), 2, colorShield, true)
		}
		if e.Poisoned {
			vector.StrokeCircle(screen, float32(e.X), float32(e.Y), float32(e.Radius+1), 1, colorPuddle, true)
		}

		// 生命条
		w := float32(e.Radius * 2)
		x := float32(e.X - e.Radius)
		y := float32(e.Y - e.Radius - 8)
		vector.DrawFilledRect(screen, x, y, w, 4, colorHealthBg, false)
		vector.DrawFilledRect(screen, x, y, w*float32(e.Health), 4, colorHealth, false)
	}
}

func drawProjectiles(screen *ebiten.Image, projectiles []simulation.ProjectileView) {
	for _, p := range projectiles {
		r := math.Max(p.Radius, 3)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(r), attackColors[p.Attack], true)
	}
}

func drawEffects(screen *ebiten.Image, effects []simulation.EffectView) {
	for _, e := range effects {
		switch e.Kind {
		case components.EffectRailBeam:
			width := float32(utils.Lerp(8, 1, utils.EaseOutQuad(e.Progress)))
			vector.StrokeLine(screen, float32(e.X1), float32(e.Y1), float32(e.X2), float32(e.Y2), width, fade(attackColors[types.AttackRail], e.Progress), true)
		case components.EffectBolt:
			vector.StrokeLine(screen, float32(e.X1), float32(e.Y1), float32(e.X2), float32(e.Y2), 2, fade(attackColors[types.AttackLightning], e.Progress), true)
		case components.EffectBlast:
			r := utils.Lerp(e.Size*0.5, e.Size, utils.EaseOutQuad(e.Progress))
			vector.StrokeCircle(screen, float32(e.X1), float32(e.Y1), float32(r), 3, fade(color.RGBA{R: 255, G: 160, B: 40, A: 255}, e.Progress), true)
		case components.EffectSplatter:
			vector.DrawFilledCircle(screen, float32(e.X1), float32(e.Y1), float32(e.Size), fade(color.RGBA{R: 90, G: 10, B: 10, A: 120}, e.Progress), true)
		case components.EffectTeleport:
			vector.StrokeCircle(screen, float32(e.X1), float32(e.Y1), float32(e.Size*2), 3, fade(colorPortal, e.Progress), true)
		}
	}
}

func (a *App) drawHUD(screen *ebiten.Image, snap simulation.Snapshot) {
	status := fmt.Sprintf("Level %d  Wave %d/%d  $%d  Lives %d  x%d",
		snap.Level, snap.Wave, snap.Waves, snap.Money, snap.Lives, snap.Speed)
	switch {
	case snap.Victory:
		status += "  VICTORY"
	case snap.GameOver:
		status += "  GAME OVER"
	case !snap.WaveActive:
		status += "  tap here or [Space] for next wave"
	}
	drawText(screen, status, 10, 8, color.White)

	for i, kind := range a.towers {
		x := i * towerSlotWidth
		clr := colorRange
		if i == a.selected {
			clr = colorBuffed
		}
		vector.DrawFilledRect(screen, float32(x+2), float32(ScreenHeight-hudBarHeight+2), towerSlotWidth-4, hudBarHeight-4, clr, false)
		drawText(screen, fmt.Sprintf("%d:%s", i+1, kind), x+8, ScreenHeight-hudBarHeight+8, color.White)
	}
	if !utils.IsMobile() {
		drawText(screen, "[U]pgrade [S]ell [F]ast F5 save F9 load", len(a.towers)*towerSlotWidth+10, ScreenHeight-hudBarHeight+8, color.White)
	}

	for i, n := range a.notices {
		drawText(screen, noticePrefix[n.level]+n.text, ScreenWidth/2-80, 40+i*16, noticeColors[n.level])
	}
}
