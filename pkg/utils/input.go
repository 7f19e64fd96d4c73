// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 当前帧的指针状态
// 同时支持鼠标和触摸，优先使用触摸
type PointerState struct {
	// X, Y 指针位置（逻辑像素）
	X, Y int
	// Inside 指针是否在窗口内
	Inside bool
	// IsTouching 是否有活动的触摸
	IsTouching bool
}

// GetPointerState 获取指针状态
// width/height 是逻辑屏幕尺寸，用于判断指针是否离开窗口
func GetPointerState(width, height int) PointerState {
	state := PointerState{}

	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.IsTouching = true
	} else {
		state.X, state.Y = ebiten.CursorPosition()
	}

	state.Inside = PointInside(state.X, state.Y, width, height)
	return state
}

// PointInside 点是否在 [0, width) x [0, height) 内
func PointInside(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}

// IsAnyKeyJustPressed 任意一个键在本帧刚刚按下
func IsAnyKeyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}
