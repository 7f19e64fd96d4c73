// Package term 基于 tcell 的终端宿主文档
//
// 文档坐标与图形宿主相同（像素单位），每个终端单元格对应 CellWidth x CellHeight。
// 覆盖层是单元格缓冲：精灵绘制点亮粒子中心所在的单元格，
// 着色把单元格前景色向粒子颜色混合。
package term

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"sort"
	"time"

	"github.com/decker502/sparkles/pkg/dom"
	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
)

// 单元格尺寸（文档单位）
const (
	CellWidth  = 4
	CellHeight = 8
)

// Document 实现 dom.Document，绘制到 tcell.Screen
//
// 不是并发安全的：事件处理、Tick 和 Draw 应在同一个 goroutine 上调用。
type Document struct {
	screen     tcell.Screen
	background color.Color

	clock clockwork.Clock
	start time.Time

	nextFrame dom.FrameID
	frames    map[dom.FrameID]dom.FrameCallback

	elements []*Element
	surfaces []*Surface
}

// NewDocument 在 screen 上创建文档，clock 为 nil 时使用系统时钟
func NewDocument(screen tcell.Screen, clock clockwork.Clock) *Document {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Document{
		screen:     screen,
		background: color.Black,
		clock:      clock,
		start:      clock.Now(),
		frames:     make(map[dom.FrameID]dom.FrameCallback),
	}
}

// SetBackground 设置文档背景色
func (d *Document) SetBackground(c color.Color) {
	if c != nil {
		d.background = c
	}
}

// Elements 按创建顺序返回所有元素
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// ResizeElement 修改元素尺寸并派发 resize 事件
func (d *Document) ResizeElement(el *Element, width, height float64) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	el.box.Width, el.box.Height = width, height
	el.dispatch(dom.EventResize)
}

// HandleMouse 光标移动到单元格 (col, row)
// 先派发全部 mouseout，再派发 mouseover
func (d *Document) HandleMouse(col, row int) {
	x := float64(col*CellWidth) + CellWidth/2
	y := float64(row*CellHeight) + CellHeight/2

	var entered, left []*Element
	for _, el := range d.elements {
		hovered := el.box.Contains(x, y)
		if hovered == el.hovered {
			continue
		}
		el.hovered = hovered
		if hovered {
			entered = append(entered, el)
		} else {
			left = append(left, el)
		}
	}

	for _, el := range left {
		el.dispatch(dom.EventMouseOut)
	}
	for _, el := range entered {
		el.dispatch(dom.EventMouseOver)
	}
}

// HandleEvent 处理 tcell 鼠标事件，返回是否已处理
func (d *Document) HandleEvent(ev tcell.Event) bool {
	mouse, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	col, row := mouse.Position()
	d.HandleMouse(col, row)
	return true
}

// Tick 执行本次调用之前请求的全部帧回调，返回执行数量
func (d *Document) Tick() int {
	if len(d.frames) == 0 {
		return 0
	}

	ids := make([]dom.FrameID, 0, len(d.frames))
	for id := range d.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pending := d.frames
	d.frames = make(map[dom.FrameID]dom.FrameCallback)

	ts := float64(d.clock.Since(d.start)) / float64(time.Millisecond)
	for _, id := range ids {
		pending[id](ts)
	}
	return len(ids)
}

// PendingFrames 待执行的帧回调数量
func (d *Document) PendingFrames() int {
	return len(d.frames)
}

// CreateSurface 创建未插入文档的单元格表面
func (d *Document) CreateSurface(class string) dom.Surface {
	s := &Surface{class: class, pointerEvents: true}
	d.surfaces = append(d.surfaces, s)
	return s
}

// ReleaseSurface 把表面从文档中移除，未知表面忽略
func (d *Document) ReleaseSurface(s dom.Surface) {
	surface, ok := s.(*Surface)
	if !ok {
		logf("Warning: cannot release foreign surface %T", s)
		return
	}
	for i, existing := range d.surfaces {
		if existing != surface {
			continue
		}
		d.surfaces = append(d.surfaces[:i], d.surfaces[i+1:]...)
		surface.anchor = nil
		surface.visible = false
		surface.cells = nil
		surface.cols, surface.rows = 0, 0
		return
	}
}

// DecodeImage 只读取图片尺寸，终端不绘制像素
func (d *Document) DecodeImage(data []byte) (dom.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Image{width: cfg.Width, height: cfg.Height}, nil
}

// RequestAnimationFrame 请求在下一次 Tick 时调用 fn
func (d *Document) RequestAnimationFrame(fn dom.FrameCallback) dom.FrameID {
	d.nextFrame++
	d.frames[d.nextFrame] = fn
	return d.nextFrame
}

// CancelAnimationFrame 取消尚未执行的帧回调
func (d *Document) CancelAnimationFrame(id dom.FrameID) {
	delete(d.frames, id)
}

// Image 终端侧的图片只有尺寸
type Image struct {
	width, height int
}

// Size 图片尺寸
func (i *Image) Size() (int, int) {
	return i.width, i.height
}

func logf(format string, args ...interface{}) {
	log.Printf("[Term] "+format, args...)
}
