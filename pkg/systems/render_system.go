package systems

import (
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
	"github.com/decker502/sparkles/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// labelPadding 标签相对元素左上角的内边距
const labelPadding = 4

// DrawKind 绘制项类型
type DrawKind int

const (
	// DrawElement 元素背景和标签
	DrawElement DrawKind = iota
	// DrawOverlay 覆盖层表面
	DrawOverlay
)

// DrawItem 一次绘制：实体、类型和有效层级
type DrawItem struct {
	Entity ecs.EntityID
	Kind   DrawKind
	Z      int
}

// RenderSystem 文档渲染系统
//
// 渲染顺序（从底到顶）：按有效层级升序，同层级按实体创建顺序。
// 元素的层级来自 ElementComponent.ZIndex（"auto" 为 0），
// 覆盖层的层级来自 OverlayComponent.ZIndex（未设置为 0）。
// 因为覆盖层总是在挂载元素之后创建，同层级时覆盖层画在元素之上。
//
// 不包括：
//   - 覆盖层内部内容由各自的拥有者绘制到离屏图像
type RenderSystem struct {
	entityManager *ecs.EntityManager
	// DebugOutline 为每个覆盖层绘制边框，--verbose 时开启
	DebugOutline bool
}

// NewRenderSystem 创建文档渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
	}
}

// Draw 按层级绘制所有元素和可见覆盖层
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.DrawOrder() {
		switch item.Kind {
		case DrawElement:
			s.drawElement(screen, item.Entity)
		case DrawOverlay:
			s.drawOverlay(screen, item.Entity)
		}
	}
}

// DrawOrder 本帧的绘制顺序
// 不可见、零尺寸或未插入文档的覆盖层不在列表中
func (s *RenderSystem) DrawOrder() []DrawItem {
	items := make([]DrawItem, 0)

	for _, id := range ecs.GetEntitiesWith2[*components.ElementComponent, *components.BoxComponent](s.entityManager) {
		elem, _ := ecs.GetComponent[*components.ElementComponent](s.entityManager, id)
		items = append(items, DrawItem{Entity: id, Kind: DrawElement, Z: elementZ(elem)})
	}

	for _, id := range ecs.GetEntitiesWith1[*components.OverlayComponent](s.entityManager) {
		overlay, _ := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
		if !overlay.Visible || overlay.Image == nil {
			continue
		}
		if _, ok := SurfaceBounds(s.entityManager, id); !ok {
			continue
		}
		items = append(items, DrawItem{Entity: id, Kind: DrawOverlay, Z: overlayZ(overlay)})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Z != items[j].Z {
			return items[i].Z < items[j].Z
		}
		return items[i].Entity < items[j].Entity
	})
	return items
}

// drawElement 绘制元素背景和标签
func (s *RenderSystem) drawElement(screen *ebiten.Image, id ecs.EntityID) {
	elem, ok := ecs.GetComponent[*components.ElementComponent](s.entityManager, id)
	if !ok {
		return
	}
	bounds := ElementBounds(s.entityManager, id)

	if elem.Fill != nil {
		utils.FillRect(screen, bounds.X, bounds.Y, bounds.Width, bounds.Height, elem.Fill, 1, ebiten.BlendSourceOver)
	}

	if elem.Label != "" {
		ebitenutil.DebugPrintAt(screen, elem.Label, int(bounds.X)+labelPadding, int(bounds.Y)+labelPadding)
	}
}

// drawOverlay 把覆盖层离屏图像叠加到屏幕
func (s *RenderSystem) drawOverlay(screen *ebiten.Image, id ecs.EntityID) {
	overlay, ok := ecs.GetComponent[*components.OverlayComponent](s.entityManager, id)
	if !ok || overlay.Image == nil {
		return
	}
	bounds, ok := SurfaceBounds(s.entityManager, id)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(bounds.X, bounds.Y)
	screen.DrawImage(overlay.Image, op)

	if s.DebugOutline {
		drawOutline(screen, bounds, color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff})
	}
}

// drawOutline 1 像素矩形边框
func drawOutline(screen *ebiten.Image, r dom.Rect, c color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, c, false)
}

// elementZ 元素的有效层级，"auto" 或无法解析时为 0
func elementZ(elem *components.ElementComponent) int {
	if elem.ZIndex == "" || elem.ZIndex == dom.ZIndexAuto {
		return 0
	}
	z, err := strconv.Atoi(strings.TrimSpace(elem.ZIndex))
	if err != nil {
		return 0
	}
	return z
}
