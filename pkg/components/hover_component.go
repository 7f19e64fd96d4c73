package components

// HoverComponent 悬停状态组件
// 由 HoverSystem 维护，状态变化时向实体派发 mouseover / mouseout
type HoverComponent struct {
	// IsHovered 光标当前是否在实体的渲染盒内
	IsHovered bool

	// Interactive 是否参与命中测试
	// false 时光标穿透，不会产生任何事件
	Interactive bool
}
