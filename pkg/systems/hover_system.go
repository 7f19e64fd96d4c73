package systems

import (
	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
)

// HoverSystem 悬停检测系统
// 根据光标位置维护每个元素的 HoverComponent，并在状态变化时派发事件
//
// 职责：
//   - 光标进入元素渲染盒时派发 mouseover，离开时派发 mouseout
//   - 嵌套元素同时处于悬停状态（与 CSS :hover 一致）
//   - 可见且拦截指针的覆盖层会遮挡其下方的元素
//
// 注意：不拦截指针的覆盖层（闪光表面）对命中测试完全透明
type HoverSystem struct {
	entityManager *ecs.EntityManager
}

// NewHoverSystem 创建悬停检测系统
func NewHoverSystem(em *ecs.EntityManager) *HoverSystem {
	return &HoverSystem{
		entityManager: em,
	}
}

// Update 光标移动到 (x, y)
func (s *HoverSystem) Update(x, y float64) {
	hit := s.hitTest(x, y)
	s.apply(hit)
}

// Leave 光标离开文档，所有悬停元素收到 mouseout
func (s *HoverSystem) Leave() {
	s.apply(map[ecs.EntityID]bool{})
}

// apply 更新悬停状态并派发事件：先派发全部 mouseout，再派发 mouseover
func (s *HoverSystem) apply(hit map[ecs.EntityID]bool) {
	entities := ecs.GetEntitiesWith2[*components.HoverComponent, *components.BoxComponent](s.entityManager)

	var entered, left []ecs.EntityID
	for _, id := range entities {
		hover, _ := ecs.GetComponent[*components.HoverComponent](s.entityManager, id)

		hovered := hit[id]
		if hovered == hover.IsHovered {
			continue
		}
		hover.IsHovered = hovered

		if hovered {
			entered = append(entered, id)
		} else {
			left = append(left, id)
		}
	}

	for _, id := range left {
		DispatchEvent(s.entityManager, id, dom.EventMouseOut)
	}
	for _, id := range entered {
		DispatchEvent(s.entityManager, id, dom.EventMouseOver)
	}
}

// hitTest 返回光标下处于悬停状态的元素集合
func (s *HoverSystem) hitTest(x, y float64) map[ecs.EntityID]bool {
	hit := make(map[ecs.EntityID]bool)

	// 拦截指针的覆盖层优先：光标只算在它挂载的元素链上
	if overlayID, ok := s.topInteractiveOverlay(x, y); ok {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, overlayID)
		start := overlay.Anchor
		if overlay.Sibling {
			start = s.parentOf(overlay.Anchor)
		}
		for id, depth := start, 0; id != 0 && depth < maxLayoutDepth; depth++ {
			if s.isInteractive(id) {
				hit[id] = true
			}
			id = s.parentOf(id)
		}
		return hit
	}

	entities := ecs.GetEntitiesWith2[*components.HoverComponent, *components.BoxComponent](s.entityManager)
	for _, id := range entities {
		if !s.isInteractive(id) {
			continue
		}
		if ElementBounds(s.entityManager, id).Contains(x, y) {
			hit[id] = true
		}
	}
	return hit
}

// topInteractiveOverlay 光标下最上层的可见、拦截指针的覆盖层
func (s *HoverSystem) topInteractiveOverlay(x, y float64) (ecs.EntityID, bool) {
	var (
		top   ecs.EntityID
		topZ  int
		found bool
	)

	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		if !overlay.Visible || !overlay.PointerEvents {
			continue
		}
		bounds, ok := SurfaceBounds(s.entityManager, id)
		if !ok || !bounds.Contains(x, y) {
			continue
		}

		z := overlayZ(overlay)
		// 同层级时后创建的在上
		if !found || z >= topZ {
			top, topZ, found = id, z, true
		}
	}
	return top, found
}

func (s *HoverSystem) isInteractive(id ecs.EntityID) bool {
	hover, ok := ecs.GetComponent[*components.HoverComponent](s.entityManager, id)
	return ok && hover.Interactive
}

func (s *HoverSystem) parentOf(id ecs.EntityID) ecs.EntityID {
	if elem, ok := ecs.GetComponent[*components.ElementComponent](s.entityManager, id); ok {
		return elem.Parent
	}
	return 0
}

// overlayZ 覆盖层的有效层级，未设置时为 0
func overlayZ(overlay *components.OverlayComponent) int {
	if overlay.ZIndexSet {
		return overlay.ZIndex
	}
	return 0
}
