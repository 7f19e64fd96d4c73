package sparkles

import (
	"strconv"
	"strings"

	"github.com/decker502/sparkles/pkg/dom"
)

// SurfaceClass 覆盖层表面的类名
const SurfaceClass = "sparkles-canvas"

// voidTags 不能包含子节点的元素，覆盖层只能作为兄弟节点插入
var voidTags = map[string]bool{
	"IMG":   true,
	"BR":    true,
	"HR":    true,
	"INPUT": true,
}

// isAppendable 元素能否容纳覆盖层作为子节点
func isAppendable(tagName string) bool {
	return !voidTags[strings.ToUpper(tagName)]
}

// createSurface 创建隐藏、不响应指针的覆盖层表面
func (s *Sparkles) createSurface() {
	s.surface = s.doc.CreateSurface(SurfaceClass)
	s.surface.SetVisible(false)
	s.surface.SetPointerEvents(false)
	s.resize(false)
}

// applyRawStyles 插入前调整元素和表面的样式
//
// static 定位的元素改为 relative，使覆盖层的绝对定位以元素为参照；
// 元素设置了整数层级时，覆盖层比它高一级。
func (s *Sparkles) applyRawStyles() {
	style := s.element.ComputedStyle()

	if style.Position == "" || style.Position == dom.PositionStatic {
		s.element.SetPosition(dom.PositionRelative)
	}

	if style.ZIndex != "" && style.ZIndex != dom.ZIndexAuto {
		if z, err := strconv.Atoi(strings.TrimSpace(style.ZIndex)); err == nil {
			s.surface.SetZIndex(z + 1)
		}
	}
}

// insertSurface 把表面挂到文档中
func (s *Sparkles) insertSurface() {
	if s.appendable {
		s.element.AppendChild(s.surface)
		return
	}
	s.element.InsertAfter(s.surface)
}

// resize 按元素当前渲染盒调整表面尺寸和位置，rebuild 时重建粒子
//
// 表面在四个方向各外扩 overlap 像素。
func (s *Sparkles) resize(rebuild bool) {
	box := s.element.OffsetBox()
	overlap := s.options.Overlap()

	width := int(box.Width + 2*overlap)
	height := int(box.Height + 2*overlap)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.surface.SetSize(width, height)

	if s.appendable {
		s.surface.SetOffset(-overlap, -overlap)
	} else {
		s.surface.SetOffset(box.X-overlap, box.Y-overlap)
	}

	if rebuild {
		s.rebuild()
	}
}
