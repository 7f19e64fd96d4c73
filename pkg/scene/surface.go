package scene

import (
	"image"
	"image/color"

	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
	"github.com/decker502/sparkles/pkg/systems"
	"github.com/decker502/sparkles/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// Surface 离屏绘图表面，实现 dom.Surface
//
// 尺寸为 0 时不持有图像，所有绘制调用都是空操作。
type Surface struct {
	doc *Document
	id  ecs.EntityID
}

// ID 表面实体 ID
func (s *Surface) ID() ecs.EntityID {
	return s.id
}

// Class 类名
func (s *Surface) Class() string {
	if o := s.component(); o != nil {
		return o.Class
	}
	return ""
}

// Image 当前离屏图像，尺寸为 0 时为 nil
func (s *Surface) Image() *ebiten.Image {
	if o := s.component(); o != nil {
		return o.Image
	}
	return nil
}

// SetSize 调整尺寸，尺寸变化时重新分配图像（内容被清空）
func (s *Surface) SetSize(width, height int) {
	o := s.component()
	if o == nil {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if o.Width == width && o.Height == height && (o.Image != nil || width == 0 || height == 0) {
		return
	}

	if o.Image != nil {
		o.Image.Deallocate()
		o.Image = nil
	}
	o.Width, o.Height = width, height
	if width > 0 && height > 0 {
		o.Image = ebiten.NewImage(width, height)
	}
}

// Size 逻辑尺寸
func (s *Surface) Size() (int, int) {
	if o := s.component(); o != nil {
		return o.Width, o.Height
	}
	return 0, 0
}

// SetOffset 相对挂载原点的偏移
func (s *Surface) SetOffset(left, top float64) {
	if o := s.component(); o != nil {
		o.OffsetX, o.OffsetY = left, top
	}
}

// Offset 当前偏移
func (s *Surface) Offset() (float64, float64) {
	if o := s.component(); o != nil {
		return o.OffsetX, o.OffsetY
	}
	return 0, 0
}

// SetZIndex 设置层级
func (s *Surface) SetZIndex(z int) {
	if o := s.component(); o != nil {
		o.ZIndex, o.ZIndexSet = z, true
	}
}

// ZIndex 层级以及是否设置过
func (s *Surface) ZIndex() (int, bool) {
	if o := s.component(); o != nil {
		return o.ZIndex, o.ZIndexSet
	}
	return 0, false
}

// SetVisible 显示或隐藏
func (s *Surface) SetVisible(visible bool) {
	if o := s.component(); o != nil {
		o.Visible = visible
	}
}

// Visible 是否可见
func (s *Surface) Visible() bool {
	if o := s.component(); o != nil {
		return o.Visible
	}
	return false
}

// SetPointerEvents 是否拦截指针事件
func (s *Surface) SetPointerEvents(enabled bool) {
	if o := s.component(); o != nil {
		o.PointerEvents = enabled
	}
}

// PointerEvents 是否拦截指针事件
func (s *Surface) PointerEvents() bool {
	if o := s.component(); o != nil {
		return o.PointerEvents
	}
	return false
}

// Bounds 在文档中的绝对区域，未插入文档时 ok 为 false
func (s *Surface) Bounds() (dom.Rect, bool) {
	return systems.SurfaceBounds(s.doc.entityManager, s.id)
}

// Clear 清空为全透明
func (s *Surface) Clear() {
	if img := s.Image(); img != nil {
		img.Clear()
	}
}

// DrawImage 把 img 的 src 区域缩放绘制到 dst，透明度乘以 alpha
func (s *Surface) DrawImage(img dom.Image, src image.Rectangle, dst dom.Rect, alpha float64) {
	target := s.Image()
	if target == nil || src.Empty() || dst.Width <= 0 || dst.Height <= 0 {
		return
	}
	source, ok := img.(*Image)
	if !ok || source == nil || source.img == nil {
		logf("Warning: cannot draw foreign image %T", img)
		return
	}

	sub, ok := source.img.SubImage(src).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dst.Width/float64(src.Dx()), dst.Height/float64(src.Dy()))
	op.GeoM.Translate(dst.X, dst.Y)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	target.DrawImage(sub, op)
}

// FillRectAtop 以 source-atop 模式填充矩形：只覆盖已有像素，不改变透明度
func (s *Surface) FillRectAtop(c color.Color, dst dom.Rect, alpha float64) {
	utils.FillRect(s.Image(), dst.X, dst.Y, dst.Width, dst.Height, c, alpha, ebiten.BlendSourceAtop)
}

func (s *Surface) component() *components.OverlayComponent {
	o, ok := ecs.GetComponent[*components.OverlayComponent](s.doc.entityManager, s.id)
	if !ok {
		return nil
	}
	return o
}
