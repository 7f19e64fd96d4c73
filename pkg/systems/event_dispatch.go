package systems

import (
	"sort"

	"github.com/decker502/sparkles/pkg/components"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/ecs"
)

// DispatchEvent 按注册顺序调用实体上某类事件的全部监听，返回调用数量
//
// 回调列表在调用前取快照：回调中增删的监听从下一次派发开始生效。
func DispatchEvent(em *ecs.EntityManager, id ecs.EntityID, ev dom.EventType) int {
	listeners, ok := ecs.GetComponent[*components.ListenerComponent](em, id)
	if !ok {
		return 0
	}

	handlers := listeners.Handlers[ev]
	if len(handlers) == 0 {
		return 0
	}

	ids := make([]dom.ListenerID, 0, len(handlers))
	for lid := range handlers {
		ids = append(ids, lid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fns := make([]func(), 0, len(ids))
	for _, lid := range ids {
		fns = append(fns, handlers[lid])
	}
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
