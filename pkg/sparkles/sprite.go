package sparkles

import (
	_ "embed"
	"image"
	"math/rand"
)

// spriteData 闪光精灵条（27x7 PNG，四个水平排列的 cel）
//
//go:embed assets/sparkle.png
var spriteData []byte

// spriteCelSize 每个 cel 在精灵条上的边长（像素）
const spriteCelSize = 7

// spriteCels 每个 cel 在精灵条上的 X 偏移
var spriteCels = [...]int{0, 6, 13, 20}

// celRect 返回 cel 在精灵条上的源矩形
func celRect(offset int) image.Rectangle {
	return image.Rect(offset, 0, offset+spriteCelSize, spriteCelSize)
}

// randomCel 随机选择一个 cel
func randomCel(rng *rand.Rand) int {
	return spriteCels[rng.Intn(len(spriteCels))]
}
