package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
)

var whitePixel *ebiten.Image

// WhitePixel 1x1 白色图像，缩放并着色后用于填充矩形
// 首次调用时创建
func WhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// FillRect 在 dst 上用 blend 模式填充矩形
//
// alpha 与颜色自身的透明度相乘。宽或高不大于 0 时不绘制。
func FillRect(dst *ebiten.Image, x, y, width, height float64, c color.Color, alpha float64, blend ebiten.Blend) {
	if dst == nil || c == nil || width <= 0 || height <= 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(width, height)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Blend = blend
	dst.DrawImage(WhitePixel(), op)
}

// DecodeImage 解码内存中的图片数据（PNG）为 ebiten 图像
func DecodeImage(data []byte) (*ebiten.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("decode image: empty data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}
