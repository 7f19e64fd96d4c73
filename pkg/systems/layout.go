package systems

import (
	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
)

// maxLayoutDepth 父链最大深度，防止错误的父引用形成环
const maxLayoutDepth = 64

// ElementOrigin 计算元素盒左上角在文档中的绝对坐标
func ElementOrigin(em *ecs.EntityManager, id ecs.EntityID) (float64, float64) {
	var x, y float64
	for depth := 0; id != 0 && depth < maxLayoutDepth; depth++ {
		box, ok := ecs.GetComponent[*components.BoxComponent](em, id)
		if !ok {
			break
		}
		x += box.X
		y += box.Y

		elem, ok := ecs.GetComponent[*components.ElementComponent](em, id)
		if !ok {
			break
		}
		id = elem.Parent
	}
	return x, y
}

// ElementBounds 元素在文档中的绝对渲染盒
func ElementBounds(em *ecs.EntityManager, id ecs.EntityID) dom.Rect {
	box, ok := ecs.GetComponent[*components.BoxComponent](em, id)
	if !ok {
		return dom.Rect{}
	}
	x, y := ElementOrigin(em, id)
	return dom.Rect{X: x, Y: y, Width: box.Width, Height: box.Height}
}

// SurfaceBounds 覆盖层在文档中的绝对区域；未插入文档时 ok 为 false
//
// 子节点的偏移相对挂载元素的原点，兄弟节点的偏移相对挂载元素父节点的原点。
func SurfaceBounds(em *ecs.EntityManager, id ecs.EntityID) (dom.Rect, bool) {
	overlay, ok := ecs.GetComponent[*components.OverlayComponent](em, id)
	if !ok || overlay.Anchor == 0 || !em.Exists(overlay.Anchor) {
		return dom.Rect{}, false
	}

	originID := overlay.Anchor
	if overlay.Sibling {
		originID = 0
		if elem, ok := ecs.GetComponent[*components.ElementComponent](em, overlay.Anchor); ok {
			originID = elem.Parent
		}
	}

	x, y := ElementOrigin(em, originID)
	return dom.Rect{
		X:      x + overlay.OffsetX,
		Y:      y + overlay.OffsetY,
		Width:  float64(overlay.Width),
		Height: float64(overlay.Height),
	}, true
}
