package scene

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
	"github.com/decker502/sparkles/pkg/systems"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
)

// ElementSpec 创建元素的参数
type ElementSpec struct {
	Name string
	Tag  string

	// X/Y 相对父元素（或文档）的坐标
	X, Y          float64
	Width, Height float64

	Position string
	ZIndex   string

	Fill  color.Color
	Label string

	// Parent 父元素，nil 表示顶层
	Parent *Element
}

// SpecFromConfig 把场景配置中的元素转换为 ElementSpec
func SpecFromConfig(ec config.ElementConfig) (ElementSpec, error) {
	spec := ElementSpec{
		Name:     ec.Name,
		Tag:      ec.Tag,
		X:        ec.X,
		Y:        ec.Y,
		Width:    ec.Width,
		Height:   ec.Height,
		Position: ec.Position,
		ZIndex:   ec.ZIndex,
		Label:    ec.Label,
	}
	if ec.Fill != "" {
		c, ok := colorutil.ParseColor(ec.Fill)
		if !ok {
			return spec, fmt.Errorf("element %q: invalid fill color %q", ec.Name, ec.Fill)
		}
		spec.Fill = c
	}
	return spec, nil
}

// Element 文档元素，实现 dom.Element
type Element struct {
	doc *Document
	id  ecs.EntityID
}

// CreateElement 创建元素实体并加入文档
func (d *Document) CreateElement(spec ElementSpec) *Element {
	tag := strings.ToUpper(strings.TrimSpace(spec.Tag))
	if tag == "" {
		tag = "DIV"
	}
	position := spec.Position
	if position == "" {
		position = dom.PositionStatic
	}
	zIndex := spec.ZIndex
	if zIndex == "" {
		zIndex = dom.ZIndexAuto
	}
	var parent ecs.EntityID
	if spec.Parent != nil {
		parent = spec.Parent.id
	}

	id := d.entityManager.CreateEntity()
	ecs.AddComponent(d.entityManager, id, &components.BoxComponent{
		X:      spec.X,
		Y:      spec.Y,
		Width:  spec.Width,
		Height: spec.Height,
	})
	ecs.AddComponent(d.entityManager, id, &components.ElementComponent{
		Name:     spec.Name,
		Tag:      tag,
		Position: position,
		ZIndex:   zIndex,
		Fill:     spec.Fill,
		Label:    spec.Label,
		Parent:   parent,
	})
	ecs.AddComponent(d.entityManager, id, &components.HoverComponent{Interactive: true})
	ecs.AddComponent(d.entityManager, id, components.NewListenerComponent())

	el := &Element{doc: d, id: id}
	d.elements = append(d.elements, el)
	return el
}

// ID 元素实体 ID
func (e *Element) ID() ecs.EntityID {
	return e.id
}

// Name 元素名称
func (e *Element) Name() string {
	if elem := e.component(); elem != nil {
		return elem.Name
	}
	return ""
}

// TagName 大写标签名
func (e *Element) TagName() string {
	if elem := e.component(); elem != nil {
		return elem.Tag
	}
	return ""
}

// OffsetBox 相对父元素的渲染盒
func (e *Element) OffsetBox() dom.Rect {
	box, ok := ecs.GetComponent[*components.BoxComponent](e.doc.entityManager, e.id)
	if !ok {
		return dom.Rect{}
	}
	return dom.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
}

// ComputedStyle 计算样式
func (e *Element) ComputedStyle() dom.Style {
	elem := e.component()
	if elem == nil {
		return dom.Style{Position: dom.PositionStatic, ZIndex: dom.ZIndexAuto}
	}
	return dom.Style{Position: elem.Position, ZIndex: elem.ZIndex}
}

// SetPosition 修改定位方式
func (e *Element) SetPosition(position string) {
	if elem := e.component(); elem != nil {
		elem.Position = position
	}
}

// AppendChild 把表面作为子节点挂到元素上
func (e *Element) AppendChild(s dom.Surface) {
	e.attach(s, false)
}

// InsertAfter 把表面作为兄弟节点插在元素之后
func (e *Element) InsertAfter(s dom.Surface) {
	e.attach(s, true)
}

func (e *Element) attach(s dom.Surface, sibling bool) {
	surface, ok := s.(*Surface)
	if !ok || surface.doc != e.doc {
		logf("Warning: cannot attach foreign surface %T to %q", s, e.Name())
		return
	}
	if overlay := surface.component(); overlay != nil {
		overlay.Anchor = e.id
		overlay.Sibling = sibling
	}
}

// AddEventListener 注册事件回调
func (e *Element) AddEventListener(ev dom.EventType, fn func()) dom.ListenerID {
	listeners, ok := ecs.GetComponent[*components.ListenerComponent](e.doc.entityManager, e.id)
	if !ok || fn == nil {
		return 0
	}
	id := listeners.NextID
	listeners.NextID++
	if listeners.Handlers[ev] == nil {
		listeners.Handlers[ev] = make(map[dom.ListenerID]func())
	}
	listeners.Handlers[ev][id] = fn
	return id
}

// RemoveEventListener 移除事件回调，未知 ID 忽略
func (e *Element) RemoveEventListener(ev dom.EventType, id dom.ListenerID) {
	listeners, ok := ecs.GetComponent[*components.ListenerComponent](e.doc.entityManager, e.id)
	if !ok {
		return
	}
	delete(listeners.Handlers[ev], id)
}

// ListenerCount 已注册的回调数量
func (e *Element) ListenerCount() int {
	listeners, ok := ecs.GetComponent[*components.ListenerComponent](e.doc.entityManager, e.id)
	if !ok {
		return 0
	}
	n := 0
	for _, handlers := range listeners.Handlers {
		n += len(handlers)
	}
	return n
}

// Dispatch 直接向元素派发事件
func (e *Element) Dispatch(ev dom.EventType) {
	systems.DispatchEvent(e.doc.entityManager, e.id, ev)
}

func (e *Element) component() *components.ElementComponent {
	elem, ok := ecs.GetComponent[*components.ElementComponent](e.doc.entityManager, e.id)
	if !ok {
		return nil
	}
	return elem
}
