// Package app 图形演示（ebiten）的核心包装器
//
// 场景加载和闪光实例管理在 pkg/demo，这里只负责 ebiten 文档、输入和绘制。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/demo"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/scene"
	"github.com/decker502/sparkles/pkg/utils"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jonboulle/clockwork"
)

// resizeStep 每次 +/- 调整的像素数
const resizeStep = 20

// buildDocument 按场景配置创建元素，parent 引用在文档中解析为父元素
func buildDocument(doc *scene.Document, elements []config.ElementConfig) error {
	for _, ec := range elements {
		spec, err := scene.SpecFromConfig(ec)
		if err != nil {
			return err
		}
		if ec.Parent != "" {
			parent, ok := doc.ElementByName(ec.Parent)
			if !ok {
				return fmt.Errorf("element %q: parent %q not found", ec.Name, ec.Parent)
			}
			spec.Parent = parent
		}
		doc.CreateElement(spec)
	}
	return nil
}

// App 是图形演示的核心包装器，实现 ebiten.Game 接口
type App struct {
	doc        *scene.Document
	overlays   *demo.Overlays
	width      int
	height     int
	background color.Color
	verbose    bool
	quit       bool
}

// NewApp 加载场景并创建应用
//
// 从嵌入资源读取配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg demo.Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	d, err := demo.Load(cfg)
	if err != nil {
		return nil, err
	}

	background := color.Color(color.Black)
	if d.Scene.Background != "" {
		c, ok := colorutil.ParseColor(d.Scene.Background)
		if !ok {
			return nil, fmt.Errorf("invalid background color %q", d.Scene.Background)
		}
		background = c
	}

	doc := scene.NewDocument(clockwork.NewRealClock())
	doc.SetDebugOutline(cfg.Verbose)
	if err := buildDocument(doc, d.Scene.Elements); err != nil {
		return nil, err
	}

	overlays := demo.NewOverlays(doc, d.Presets)
	err = d.AttachAll(overlays, func(name string) (dom.Element, bool) {
		el, ok := doc.ElementByName(name)
		return el, ok
	})
	if err != nil {
		return nil, err
	}

	ebiten.SetWindowTitle(d.Scene.Window.Title)
	log.Printf("[App] Ready: %d overlays", overlays.Len())

	return &App{
		doc:        doc,
		overlays:   overlays,
		width:      d.Scene.Window.Width,
		height:     d.Scene.Window.Height,
		background: background,
		verbose:    cfg.Verbose,
	}, nil
}

// WindowSize 场景的窗口尺寸
func (a *App) WindowSize() (int, int) {
	return a.width, a.height
}

// Update 处理输入并推进帧回调
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	pointer := utils.GetPointerState(a.width, a.height)
	if pointer.Inside {
		a.doc.SetCursor(float64(pointer.X), float64(pointer.Y))
	} else {
		a.doc.CursorLeft()
	}

	a.handleKeys()
	a.doc.Tick()
	a.overlays.ReleaseIdle()
	return nil
}

// handleKeys 键盘操作
func (a *App) handleKeys() {
	switch {
	case utils.IsAnyKeyJustPressed(ebiten.KeyQ, ebiten.KeyEscape):
		a.quit = true
	case utils.IsAnyKeyJustPressed(ebiten.KeyS):
		a.overlays.StartAll()
	case utils.IsAnyKeyJustPressed(ebiten.KeyX):
		a.overlays.StopAll()
	case utils.IsAnyKeyJustPressed(ebiten.KeyR):
		a.overlays.ToggleRemoved()
	case utils.IsAnyKeyJustPressed(ebiten.KeyU):
		if el, ok := a.doc.Hovered(); ok {
			a.overlays.CyclePreset(el.Name())
		}
	case utils.IsAnyKeyJustPressed(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		a.resizeHovered(resizeStep)
	case utils.IsAnyKeyJustPressed(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		a.resizeHovered(-resizeStep)
	}
}

// resizeHovered 调整悬停元素的尺寸，触发 resize 事件
func (a *App) resizeHovered(delta float64) {
	el, ok := a.doc.Hovered()
	if !ok {
		return
	}
	box := el.OffsetBox()
	a.doc.ResizeElement(el, box.Width+delta, box.Height+delta)
}

// Draw 绘制场景和帮助文字
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.background)
	a.doc.Draw(screen)

	help := "S start  X stop  U preset  +/- resize  R remove/reattach  Q quit"
	if a.overlays.Removed() {
		help += "  [removed]"
	}
	ebitenutil.DebugPrintAt(screen, help, 8, a.height-20)

	if a.verbose {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  frames %d  retired %d", ebiten.ActualTPS(), a.doc.PendingFrames(), a.overlays.Retired()), 8, 8)
	}
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

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}
