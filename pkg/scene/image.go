package scene

import "github.com/hajimehoshi/ebiten/v2"

// Image 解码后的图片，实现 dom.Image
type Image struct {
	img *ebiten.Image
}

// Size 图片尺寸
func (i *Image) Size() (int, int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Ebiten 底层 ebiten 图像
func (i *Image) Ebiten() *ebiten.Image {
	return i.img
}
