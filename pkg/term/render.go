package term

import (
	"image/color"
	"math"
	"sort"

	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
	"github.com/gdamore/tcell/v2"
)

// Draw 绘制背景、元素和可见覆盖层，然后刷新屏幕
func (d *Document) Draw() {
	cols, rows := d.screen.Size()
	bg := make([]color.Color, cols*rows)
	for i := range bg {
		bg[i] = d.background
	}
	bgAt := func(col, row int) color.Color {
		if col < 0 || row < 0 || col >= cols || row >= rows {
			return d.background
		}
		return bg[row*cols+col]
	}

	d.screen.Clear()
	fill := tcell.StyleDefault.Background(toTcell(d.background))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			d.screen.SetContent(col, row, ' ', nil, fill)
		}
	}

	for _, el := range d.elements {
		c0, r0, c1, r1 := cellSpan(el.box)
		if el.fill != nil {
			style := tcell.StyleDefault.Background(toTcell(el.fill))
			for row := r0; row < r1 && row < rows; row++ {
				for col := c0; col < c1 && col < cols; col++ {
					if col < 0 || row < 0 {
						continue
					}
					bg[row*cols+col] = el.fill
					d.screen.SetContent(col, row, ' ', nil, style)
				}
			}
		}
		if el.label != "" && r0 >= 0 && r0 < rows {
			col := c0 + 1
			for _, r := range el.label {
				if col >= c1 || col >= cols {
					break
				}
				if col >= 0 {
					style := tcell.StyleDefault.Background(toTcell(bgAt(col, r0))).Foreground(tcell.ColorWhite)
					d.screen.SetContent(col, r0, r, nil, style)
				}
				col++
			}
		}
	}

	for _, s := range d.drawOrder() {
		x, y, _ := s.origin()
		baseCol, baseRow := cellOf(x, y)
		for row := 0; row < s.rows; row++ {
			for col := 0; col < s.cols; col++ {
				c := s.cells[row*s.cols+col]
				if !c.set {
					continue
				}
				sc, sr := baseCol+col, baseRow+row
				if sc < 0 || sr < 0 || sc >= cols || sr >= rows {
					continue
				}
				under := bgAt(sc, sr)
				fg := colorutil.BlendColors(under, c.fg, c.alpha)
				style := tcell.StyleDefault.Background(toTcell(under)).Foreground(toTcell(fg))
				d.screen.SetContent(sc, sr, c.glyph, nil, style)
			}
		}
	}

	d.screen.Show()
}

// drawOrder 可见且已插入的覆盖层，按层级升序，同层级按创建顺序
func (d *Document) drawOrder() []*Surface {
	out := make([]*Surface, 0, len(d.surfaces))
	for _, s := range d.surfaces {
		if !s.visible {
			continue
		}
		if _, _, ok := s.origin(); !ok {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return surfaceZ(out[i]) < surfaceZ(out[j])
	})
	return out
}

func surfaceZ(s *Surface) int {
	if s.zSet {
		return s.z
	}
	return 0
}

// cellOf 文档坐标所在的单元格，负坐标向下取整
func cellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// cellSpan 矩形覆盖的单元格范围 [c0, c1) x [r0, r1)
func cellSpan(r dom.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = cellOf(r.X, r.Y)
	c1 = int(math.Ceil((r.X + r.Width) / CellWidth))
	r1 = int(math.Ceil((r.Y + r.Height) / CellHeight))
	return
}

// toTcell 转换为 tcell 真彩色
func toTcell(c color.Color) tcell.Color {
	cf := colorutil.ToColorful(c)
	r, g, b := cf.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
