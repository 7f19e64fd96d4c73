// Package main 闪光覆盖层终端演示
//
// Usage:
//
//	go run ./cmd/sparkles-term [flags]
//
// 在仓库根目录运行，配置从文件系统读取。
//
// Controls:
//
//	Mouse hover  - 悬停元素开始闪光，移出后淡出
//	s / x        - 全部开始 / 全部停止
//	u            - 悬停元素切换到下一个预设
//	r            - 移除/重新挂载全部实例
//	q / Escape   - 退出
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/decker502/sparkles/pkg/demo"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/term"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

var (
	sceneFlag   = flag.String("scene", demo.DefaultScenePath, "Scene file path")
	presetsFlag = flag.String("presets", demo.DefaultPresetsPath, "Preset file path")
	presetFlag  = flag.String("preset", "", "Use this preset for every element")
	logFlag     = flag.String("log", "", "Write logs to this file (terminal is used for drawing)")
)

// frameInterval 帧间隔（约 60 FPS）
const frameInterval = 16 * time.Millisecond

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 终端用于绘制，日志只能写文件
	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.Create(*logFlag)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	d, err := demo.Load(demo.Config{
		ScenePath:   *sceneFlag,
		PresetsPath: *presetsFlag,
		Preset:      *presetFlag,
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)

	doc := term.NewDocument(screen, clockwork.NewRealClock())
	if c, ok := colorutil.ParseColor(d.Scene.Background); ok {
		doc.SetBackground(c)
	}

	// 场景按窗口像素描述，缩放到当前终端
	cols, rows := screen.Size()
	scale := math.Min(
		float64(cols*term.CellWidth)/float64(d.Scene.Window.Width),
		float64(rows*term.CellHeight)/float64(d.Scene.Window.Height),
	)
	log.Printf("[Term] Screen %dx%d cells, scene scale %.2f", cols, rows, scale)

	// 终端只有顶层元素，嵌套元素展开为文档坐标
	boxes := demo.AbsoluteBoxes(d.Scene.Elements)
	elements := make(map[string]*term.Element, len(d.Scene.Elements))
	for _, ec := range d.Scene.Elements {
		fill, _ := colorutil.ParseColor(ec.Fill)
		box := boxes[ec.Name]
		elements[ec.Name] = doc.CreateElement(
			ec.Name,
			ec.Tag,
			dom.Rect{X: box.X * scale, Y: box.Y * scale, Width: box.Width * scale, Height: box.Height * scale},
			dom.Style{Position: ec.Position, ZIndex: ec.ZIndex},
			fill,
			ec.Label,
		)
	}

	overlays := demo.NewOverlays(doc, d.Presets)
	err = d.AttachAll(overlays, func(name string) (dom.Element, bool) {
		el, ok := elements[name]
		return el, ok
	})
	if err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if !handleEvent(ev, doc, overlays) {
				return nil
			}
		case <-ticker.C:
			doc.Tick()
			overlays.ReleaseIdle()
			doc.Draw()
		}
	}
}

// handleEvent 处理输入，返回 false 表示退出
func handleEvent(ev tcell.Event, doc *term.Document, overlays *demo.Overlays) bool {
	if doc.HandleEvent(ev) {
		return true
	}

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 's':
			overlays.StartAll()
		case 'x':
			overlays.StopAll()
		case 'r':
			overlays.ToggleRemoved()
		case 'u':
			for _, el := range doc.Elements() {
				if el.Hovered() {
					overlays.CyclePreset(el.Name())
				}
			}
		}
	case *tcell.EventResize:
		doc.Draw()
	}
	return true
}
