package sparkles

import (
	"github.com/decker502/sparkles/pkg/dom"
)

// tintAlpha 着色层的固定透明度
const tintAlpha = 0.6

// drawParticles 清空表面并绘制所有粒子
//
// 每个粒子先以自身透明度绘制精灵 cel，再用 source-atop 在 7x7 区域内叠加颜色。
// 着色矩形固定为 cel 原始尺寸，不随粒子尺寸缩放。
func drawParticles(surface dom.Surface, sprite dom.Image, particles []Particle) {
	surface.Clear()

	for i := range particles {
		p := &particles[i]

		if sprite != nil {
			surface.DrawImage(sprite, celRect(p.Cel), dom.Rect{
				X:      p.Position.X,
				Y:      p.Position.Y,
				Width:  p.Size,
				Height: p.Size,
			}, clampAlpha(p.Opacity))
		}

		if p.tint != nil {
			surface.FillRectAtop(p.tint, dom.Rect{
				X:      p.Position.X,
				Y:      p.Position.Y,
				Width:  spriteCelSize,
				Height: spriteCelSize,
			}, tintAlpha)
		}
	}
}

// clampAlpha 截断到 [0, 1]
func clampAlpha(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
