// Package scene 基于 ebiten 的宿主文档
//
// 元素和覆盖层表面都是 ECS 实体：HoverSystem 根据光标派发悬停事件，
// RenderSystem 按层级把元素和覆盖层绘制到屏幕。帧回调由 Tick 驱动，
// 时间戳来自注入的 clockwork.Clock，测试中使用 FakeClock。
package scene

import (
	"log"
	"sort"
	"time"

	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
	"github.com/decker502/sparkles/pkg/systems"
	"github.com/decker502/sparkles/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
)

// Document 实现 dom.Document
//
// 不是并发安全的：所有方法都应在 ebiten 的 Update/Draw goroutine 上调用。
type Document struct {
	entityManager *ecs.EntityManager
	hoverSystem   *systems.HoverSystem
	renderSystem  *systems.RenderSystem

	clock clockwork.Clock
	start time.Time

	nextFrame dom.FrameID
	frames    map[dom.FrameID]dom.FrameCallback

	elements []*Element
}

// NewDocument 创建空文档，clock 为 nil 时使用系统时钟
func NewDocument(clock clockwork.Clock) *Document {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	em := ecs.NewEntityManager()
	return &Document{
		entityManager: em,
		hoverSystem:   systems.NewHoverSystem(em),
		renderSystem:  systems.NewRenderSystem(em),
		clock:         clock,
		start:         clock.Now(),
		frames:        make(map[dom.FrameID]dom.FrameCallback),
	}
}

// EntityManager 文档使用的实体管理器
func (d *Document) EntityManager() *ecs.EntityManager {
	return d.entityManager
}

// SetDebugOutline 是否为覆盖层绘制调试边框
func (d *Document) SetDebugOutline(enabled bool) {
	d.renderSystem.DebugOutline = enabled
}

// Elements 按创建顺序返回所有元素
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// ElementByName 按名称查找元素
func (d *Document) ElementByName(name string) (*Element, bool) {
	for _, el := range d.elements {
		if el.Name() == name {
			return el, true
		}
	}
	return nil, false
}

// ResizeElement 修改元素尺寸并派发 resize 事件
func (d *Document) ResizeElement(el *Element, width, height float64) {
	box, ok := ecs.GetComponent[*components.BoxComponent](d.entityManager, el.id)
	if !ok {
		return
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	box.Width, box.Height = width, height
	systems.DispatchEvent(d.entityManager, el.id, dom.EventResize)
}

// SetCursor 光标移动到文档坐标 (x, y)
func (d *Document) SetCursor(x, y float64) {
	d.hoverSystem.Update(x, y)
}

// CursorLeft 光标离开文档
func (d *Document) CursorLeft() {
	d.hoverSystem.Leave()
}

// Hovered 光标当前所在的最内层元素
func (d *Document) Hovered() (*Element, bool) {
	for i := len(d.elements) - 1; i >= 0; i-- {
		el := d.elements[i]
		if hover, ok := ecs.GetComponent[*components.HoverComponent](d.entityManager, el.id); ok && hover.IsHovered {
			return el, true
		}
	}
	return nil, false
}

// Timestamp 自文档创建以来的毫秒数
func (d *Document) Timestamp() float64 {
	return float64(d.clock.Since(d.start)) / float64(time.Millisecond)
}

// Tick 清理已释放的实体，然后执行本次调用之前请求的全部帧回调
//
// 回调中请求的新帧留到下一次 Tick。返回执行的回调数量。
func (d *Document) Tick() int {
	if n := d.entityManager.RemoveMarkedEntities(); n > 0 {
		logf("Removed %d released entities", n)
	}
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

	ts := d.Timestamp()
	for _, id := range ids {
		pending[id](ts)
	}
	return len(ids)
}

// PendingFrames 待执行的帧回调数量
func (d *Document) PendingFrames() int {
	return len(d.frames)
}

// Draw 绘制元素和可见的覆盖层
func (d *Document) Draw(screen *ebiten.Image) {
	d.renderSystem.Draw(screen)
}

// CreateSurface 创建未插入文档的覆盖层表面
func (d *Document) CreateSurface(class string) dom.Surface {
	id := d.entityManager.CreateEntity()
	ecs.AddComponent(d.entityManager, id, &components.OverlayComponent{
		Class:         class,
		PointerEvents: true,
	})
	return &Surface{doc: d, id: id}
}

// ReleaseSurface 释放表面的离屏图像并标记实体删除，实体在下一次 Tick 时清理
//
// 其他文档创建的表面和已释放的表面忽略。
func (d *Document) ReleaseSurface(s dom.Surface) {
	surface, ok := s.(*Surface)
	if !ok || surface == nil || surface.doc != d {
		logf("Warning: cannot release foreign surface %T", s)
		return
	}
	if !ecs.HasComponent[*components.OverlayComponent](d.entityManager, surface.id) {
		return
	}

	if img := surface.Image(); img != nil {
		img.Deallocate()
	}
	// 先摘掉覆盖层组件，本帧剩余的查询就不再看到它
	ecs.RemoveComponent[*components.OverlayComponent](d.entityManager, surface.id)
	d.entityManager.DestroyEntity(surface.id)
}

// DecodeImage 解码 PNG 数据
func (d *Document) DecodeImage(data []byte) (dom.Image, error) {
	img, err := utils.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return &Image{img: img}, nil
}

// RequestAnimationFrame 请求在下一次 Tick 时调用 fn
func (d *Document) RequestAnimationFrame(fn dom.FrameCallback) dom.FrameID {
	d.nextFrame++
	d.frames[d.nextFrame] = fn
	return d.nextFrame
}

// CancelAnimationFrame 取消尚未执行的帧回调，未知 ID 忽略
func (d *Document) CancelAnimationFrame(id dom.FrameID) {
	delete(d.frames, id)
}

// logf 带标签的日志
func logf(format string, args ...interface{}) {
	log.Printf("[Scene] "+format, args...)
}
