package term

import (
	"image/color"
	"strings"

	"github.com/decker502/sparkles/pkg/dom"
)

// Element 终端文档中的顶层元素，实现 dom.Element
type Element struct {
	doc   *Document
	name  string
	tag   string
	box   dom.Rect
	style dom.Style
	fill  color.Color
	label string

	hovered   bool
	nextID    dom.ListenerID
	listeners map[dom.EventType]map[dom.ListenerID]func()
}

// CreateElement 创建元素，box 使用文档单位
func (d *Document) CreateElement(name, tag string, box dom.Rect, style dom.Style, fill color.Color, label string) *Element {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		tag = "DIV"
	}
	if style.Position == "" {
		style.Position = dom.PositionStatic
	}
	if style.ZIndex == "" {
		style.ZIndex = dom.ZIndexAuto
	}
	el := &Element{
		doc:       d,
		name:      name,
		tag:       tag,
		box:       box,
		style:     style,
		fill:      fill,
		label:     label,
		listeners: make(map[dom.EventType]map[dom.ListenerID]func()),
	}
	d.elements = append(d.elements, el)
	return el
}

// Name 元素名称
func (e *Element) Name() string { return e.name }

// Hovered 光标是否在元素内
func (e *Element) Hovered() bool { return e.hovered }

// TagName 大写标签名
func (e *Element) TagName() string { return e.tag }

// OffsetBox 渲染盒（顶层元素相对文档）
func (e *Element) OffsetBox() dom.Rect { return e.box }

// ComputedStyle 计算样式
func (e *Element) ComputedStyle() dom.Style { return e.style }

// SetPosition 修改定位方式
func (e *Element) SetPosition(position string) { e.style.Position = position }

// AppendChild 把表面作为子节点挂到元素上
func (e *Element) AppendChild(s dom.Surface) { e.attach(s, false) }

// InsertAfter 把表面作为兄弟节点插在元素之后
func (e *Element) InsertAfter(s dom.Surface) { e.attach(s, true) }

func (e *Element) attach(s dom.Surface, sibling bool) {
	surface, ok := s.(*Surface)
	if !ok {
		logf("Warning: cannot attach foreign surface %T to %q", s, e.name)
		return
	}
	surface.anchor = e
	surface.sibling = sibling
}

// AddEventListener 注册事件回调
func (e *Element) AddEventListener(ev dom.EventType, fn func()) dom.ListenerID {
	if fn == nil {
		return 0
	}
	e.nextID++
	if e.listeners[ev] == nil {
		e.listeners[ev] = make(map[dom.ListenerID]func())
	}
	e.listeners[ev][e.nextID] = fn
	return e.nextID
}

// RemoveEventListener 移除事件回调
func (e *Element) RemoveEventListener(ev dom.EventType, id dom.ListenerID) {
	delete(e.listeners[ev], id)
}

// ListenerCount 已注册的回调数量
func (e *Element) ListenerCount() int {
	n := 0
	for _, handlers := range e.listeners {
		n += len(handlers)
	}
	return n
}

// dispatch 按注册顺序调用回调
func (e *Element) dispatch(ev dom.EventType) {
	handlers := e.listeners[ev]
	fns := make([]func(), 0, len(handlers))
	for id := dom.ListenerID(1); id <= e.nextID; id++ {
		if fn, ok := handlers[id]; ok {
			fns = append(fns, fn)
		}
	}
	for _, fn := range fns {
		fn()
	}
}
