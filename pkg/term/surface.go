package term

import (
	"image"
	"image/color"
	"math"

	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
)

// celGlyphs 精灵条中每个 cel 的起始横坐标对应的字符，从暗到亮
var celGlyphs = map[int]rune{
	0:  '·',
	6:  '+',
	13: '*',
	20: '✦',
}

// defaultGlyph 未知 cel 使用的字符
const defaultGlyph = '*'

// cell 覆盖层中的一个单元格
type cell struct {
	glyph rune
	// alpha 单元格亮度（0-1）
	alpha float64
	// fg 前景色，着色前为白色
	fg  color.Color
	set bool
}

// Surface 单元格缓冲表面，实现 dom.Surface
type Surface struct {
	class         string
	width, height int
	left, top     float64
	z             int
	zSet          bool
	visible       bool
	pointerEvents bool

	anchor  *Element
	sibling bool

	cols, rows int
	cells      []cell
}

// Class 类名
func (s *Surface) Class() string { return s.class }

// SetSize 调整尺寸并清空内容
func (s *Surface) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.width, s.height = width, height
	s.cols = (width + CellWidth - 1) / CellWidth
	s.rows = (height + CellHeight - 1) / CellHeight
	s.cells = make([]cell, s.cols*s.rows)
}

// Size 尺寸（文档单位）
func (s *Surface) Size() (int, int) { return s.width, s.height }

// SetOffset 相对挂载原点的偏移
func (s *Surface) SetOffset(left, top float64) { s.left, s.top = left, top }

// SetZIndex 设置层级
func (s *Surface) SetZIndex(z int) { s.z, s.zSet = z, true }

// SetVisible 显示或隐藏
func (s *Surface) SetVisible(visible bool) { s.visible = visible }

// Visible 是否可见
func (s *Surface) Visible() bool { return s.visible }

// SetPointerEvents 是否拦截指针事件（终端宿主只记录）
func (s *Surface) SetPointerEvents(enabled bool) { s.pointerEvents = enabled }

// Clear 清空全部单元格
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
}

// DrawImage 点亮 dst 中心所在的单元格
// 已点亮的单元格只会被更亮的粒子覆盖
func (s *Surface) DrawImage(img dom.Image, src image.Rectangle, dst dom.Rect, alpha float64) {
	c := s.cellAt(dst.X+dst.Width/2, dst.Y+dst.Height/2)
	if c == nil || alpha <= 0 {
		return
	}
	if c.set && c.alpha >= alpha {
		return
	}

	glyph, ok := celGlyphs[src.Min.X]
	if !ok {
		glyph = defaultGlyph
	}
	*c = cell{glyph: glyph, alpha: math.Min(alpha, 1), fg: color.White, set: true}
}

// FillRectAtop 对矩形中心所在的单元格着色，未点亮的单元格不受影响
func (s *Surface) FillRectAtop(c color.Color, dst dom.Rect, alpha float64) {
	target := s.cellAt(dst.X+dst.Width/2, dst.Y+dst.Height/2)
	if target == nil || !target.set || c == nil {
		return
	}
	target.fg = colorutil.BlendColors(target.fg, c, alpha)
}

// origin 表面左上角在文档中的坐标，未插入时 ok 为 false
//
// 终端宿主只有顶层元素，兄弟节点的父原点就是文档原点。
func (s *Surface) origin() (float64, float64, bool) {
	if s.anchor == nil {
		return 0, 0, false
	}
	if s.sibling {
		return s.left, s.top, true
	}
	return s.anchor.box.X + s.left, s.anchor.box.Y + s.top, true
}

// cellAt 表面内 (x, y) 所在的单元格
func (s *Surface) cellAt(x, y float64) *cell {
	if x < 0 || y < 0 {
		return nil
	}
	col := int(x) / CellWidth
	row := int(y) / CellHeight
	if col >= s.cols || row >= s.rows {
		return nil
	}
	return &s.cells[row*s.cols+col]
}
