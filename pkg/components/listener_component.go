package components

import "github.com/decker502/sparkles/pkg/dom"

// ListenerComponent 实体上注册的事件监听
type ListenerComponent struct {
	// NextID 下一个监听 ID，从 1 开始
	NextID dom.ListenerID
	// Handlers 事件类型 -> 监听 ID -> 回调
	Handlers map[dom.EventType]map[dom.ListenerID]func()
}

// NewListenerComponent 创建空的监听组件
func NewListenerComponent() *ListenerComponent {
	return &ListenerComponent{
		NextID:   1,
		Handlers: make(map[dom.EventType]map[dom.ListenerID]func()),
	}
}
