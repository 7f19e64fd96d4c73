package components

import (
	"image/color"

	"github.com/decker502/sparkles/pkg/ecs"
)

// BoxComponent 元素渲染盒
// X/Y 相对父元素的原点（顶层元素相对文档），单位像素
type BoxComponent struct {
	X, Y          float64
	Width, Height float64
}

// ElementComponent 文档元素
//
// 设计原则：
//   - 纯数据组件，布局和事件由系统处理
//   - 样式只保留覆盖层需要的 position 和 z-index
type ElementComponent struct {
	// Name 场景文件中的名称，用于查找和调试输出
	Name string
	// Tag 标签名（大写），决定能否包含子节点
	Tag string

	// Position 定位方式：static / relative / absolute
	Position string
	// ZIndex 层级，"auto" 或整数字符串
	ZIndex string

	// Fill 背景色，nil 表示透明
	Fill color.Color
	// Label 左上角显示的文字
	Label string

	// Parent 父元素，0 表示顶层
	Parent ecs.EntityID
}
