package components

import (
	"github.com/decker502/sparkles/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// OverlayComponent 覆盖层表面
// 离屏图像挂在某个元素上，渲染时按 z-index 叠加到屏幕
type OverlayComponent struct {
	// Class 类名
	Class string

	// Image 离屏图像，尺寸为 0 时为 nil
	Image *ebiten.Image
	// Width/Height 逻辑尺寸
	Width, Height int

	// OffsetX/OffsetY 相对挂载原点的偏移
	OffsetX, OffsetY float64

	// ZIndex 层级，仅在 ZIndexSet 时生效，否则按 0 处理
	ZIndex    int
	ZIndexSet bool

	// Visible 是否绘制
	Visible bool
	// PointerEvents 是否拦截指针事件
	PointerEvents bool

	// Anchor 挂载的元素，0 表示尚未插入文档
	Anchor ecs.EntityID
	// Sibling 作为 Anchor 的兄弟节点插入：偏移相对 Anchor 的父元素原点
	Sibling bool
}
