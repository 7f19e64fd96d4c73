// Package dom 定义闪光覆盖层依赖的宿主文档接口
//
// 宿主需要提供：元素几何与计算样式查询、节点插入、2D 绘图表面、
// 图片解码，以及每帧调度与取消。pkg/scene（ebiten）和 pkg/term（tcell）
// 是两个实现。
//
// 所有方法都在宿主的帧循环所在的 goroutine 上调用，实现不需要加锁。
package dom

import (
	"image"
	"image/color"
)

// Rect 矩形（像素单位）
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains 点是否在矩形内（含左上边，不含右下边）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// 定位方式
const (
	PositionStatic   = "static"
	PositionRelative = "relative"
	PositionAbsolute = "absolute"
)

// ZIndexAuto 未设置层级
const ZIndexAuto = "auto"

// Style 计算样式中覆盖层关心的部分
type Style struct {
	Position string // "static"、"relative"、"absolute" ...
	ZIndex   string // "auto" 或整数
}

// EventType 元素事件类型
type EventType string

const (
	EventMouseOver EventType = "mouseover"
	EventMouseOut  EventType = "mouseout"
	EventResize    EventType = "resize"
)

// ListenerID 事件监听句柄，用于移除监听
type ListenerID uint64

// FrameID 帧回调句柄，0 表示无效
type FrameID uint64

// FrameCallback 帧回调，timestamp 为毫秒时间戳
type FrameCallback func(timestamp float64)

// Image 已解码的图片
type Image interface {
	Size() (width, height int)
}

// Element 目标元素
type Element interface {
	// TagName 大写标签名，如 "DIV"、"IMG"
	TagName() string

	// OffsetBox 元素渲染盒（相对父节点）
	OffsetBox() Rect

	// ComputedStyle 计算样式
	ComputedStyle() Style

	// SetPosition 修改元素定位方式
	SetPosition(position string)

	// AppendChild 把表面作为子节点插入（坐标相对元素）
	AppendChild(s Surface)

	// InsertAfter 把表面作为下一个兄弟节点插入（坐标相对父节点）
	InsertAfter(s Surface)

	AddEventListener(ev EventType, fn func()) ListenerID
	RemoveEventListener(ev EventType, id ListenerID)
}

// Surface 透明绘图表面（对应 canvas + 2D context）
type Surface interface {
	// SetSize 调整像素尺寸，调整后内容被清空
	SetSize(width, height int)
	Size() (width, height int)

	// SetOffset 绝对定位偏移（相对所在容器）
	SetOffset(left, top float64)

	// SetZIndex 层级
	SetZIndex(z int)

	SetVisible(visible bool)
	Visible() bool

	// SetPointerEvents false 时表面不参与命中测试
	SetPointerEvents(enabled bool)

	// Clear 清空整个表面
	Clear()

	// DrawImage 以 alpha 透明度把 img 的 src 区域绘制到 dst
	DrawImage(img Image, src image.Rectangle, dst Rect, alpha float64)

	// FillRectAtop 以 source-atop 合成方式填充矩形：只着色已有像素
	FillRectAtop(c color.Color, dst Rect, alpha float64)
}

// Document 宿主文档
type Document interface {
	// CreateSurface 创建一个尚未插入的表面
	CreateSurface(class string) Surface

	// ReleaseSurface 把表面从文档中移除并释放其资源，之后不能再使用
	// 对未知或已释放的表面无副作用
	ReleaseSurface(s Surface)

	// DecodeImage 解码图片数据
	DecodeImage(data []byte) (Image, error)

	// RequestAnimationFrame 在下一帧调用 fn
	RequestAnimationFrame(fn FrameCallback) FrameID

	// CancelAnimationFrame 取消尚未执行的回调，对无效或已执行的句柄无副作用
	CancelAnimationFrame(id FrameID)
}
