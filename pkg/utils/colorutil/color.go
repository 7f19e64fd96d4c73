// Package colorutil 颜色解析与混合，不依赖图形后端
package colorutil

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor 解析颜色字符串
//
// 支持 "#rgb"、"#rrggbb"（大小写不敏感）和 CSS 颜色名（如 "gold"）。
// 无法识别时返回 false，调用方应跳过着色而不是报错。
func ParseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(strings.ToLower(s))
		if err != nil {
			return nil, false
		}
		return c.Clamped(), true
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, true
	}
	return nil, false
}

// ToColorful 把任意 color.Color 转换为 colorful.Color（忽略 alpha）
func ToColorful(c color.Color) colorful.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		// alpha 为 0 时 MakeColor 失败，按黑色处理
		return colorful.Color{}
	}
	return cf
}

// BlendColors 在 RGB 空间按 t 混合两种颜色
// t=0 返回 a，t=1 返回 b
func BlendColors(a, b color.Color, t float64) color.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return ToColorful(a).BlendRgb(ToColorful(b), t).Clamped()
}
