package sparkles

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/utils/colorutil"
)

// Vec2 二维向量
type Vec2 struct {
	X, Y float64
}

// Particle 单个闪光粒子
//
// Delta.Y 为正表示向下（屏幕坐标），方向偏好在生成时已经编码进符号里。
type Particle struct {
	Color    string  // 解析前的颜色字符串，空表示不着色
	Delta    Vec2    // 每帧位移基数（再乘以 speed 并缩放）
	Position Vec2    // 在表面上的位置（左上角）
	Opacity  float64 // 0 ~ 1.2，绘制时截断到 1
	Size     float64 // 绘制边长（像素）
	Cel      int     // 精灵条 cel 的 X 偏移

	tint color.Color // Color 解析结果，解析失败为 nil
}

// newParticles 生成完整的粒子集合
//
// 总是返回 count 个粒子（count 为负时返回空集合），不会部分生成。
func newParticles(rng *rand.Rand, width, height int, opts config.Options) []Particle {
	count := opts.Count()
	if count < 0 {
		count = 0
	}

	spec := opts.Color()
	direction := opts.Direction()

	particles := make([]Particle, count)
	for i := range particles {
		var c string
		if !spec.IsZero() {
			c = resolveColor(rng, spec)
		}
		particles[i] = Particle{
			Color: c,
			Delta: Vec2{
				X: math.Floor(rng.Float64()*1000) - 500,
				Y: verticalDelta(rng, direction),
			},
			Position: Vec2{
				X: math.Floor(rng.Float64() * float64(width)),
				Y: math.Floor(rng.Float64() * float64(height)),
			},
			Opacity: initialOpacity(rng),
			Size:    randomSize(rng, opts),
			Cel:     randomCel(rng),
			tint:    parseTint(c),
		}
	}
	return particles
}

// verticalDelta 按方向偏好生成垂直位移基数
//
//	down: [50, 549]
//	up:   [-549, -50]
//	both: [-500, 499]
func verticalDelta(rng *rand.Rand, direction config.Direction) float64 {
	switch direction {
	case config.DirectionDown:
		return math.Floor(rng.Float64()*500) + 50
	case config.DirectionUp:
		return -(math.Floor(rng.Float64()*500) + 50)
	default:
		return math.Floor(rng.Float64()*1000) - 500
	}
}

// randomSize 在 [minSize, maxSize] 内随机取整数尺寸
func randomSize(rng *rand.Rand, opts config.Options) float64 {
	minSize := float64(opts.MinSize())
	maxSize := float64(opts.MaxSize())
	return math.Floor(rng.Float64()*(maxSize-minSize+1) + minSize)
}

// initialOpacity 开区间 (0, 1) 内的随机透明度
func initialOpacity(rng *rand.Rand) float64 {
	for {
		if v := rng.Float64(); v > 0 {
			return v
		}
	}
}

// resolveColor 为单个粒子确定颜色
func resolveColor(rng *rand.Rand, spec config.ColorSpec) string {
	switch {
	case spec.Rainbow:
		return randomHexColor(rng)
	case len(spec.Choices) > 0:
		return spec.Choices[rng.Intn(len(spec.Choices))]
	default:
		return spec.Literal
	}
}

// randomHexColor 生成 "#rrggbb" 形式的随机颜色
func randomHexColor(rng *rand.Rand) string {
	return fmt.Sprintf("#%06x", rng.Intn(0xFFFFFF))
}

// parseTint 解析粒子着色，空字符串或无法识别时不着色
func parseTint(c string) color.Color {
	if c == "" {
		return nil
	}
	tint, ok := colorutil.ParseColor(c)
	if !ok {
		return nil
	}
	return tint
}
