package sparkles

import (
	"math"
	"math/rand"
)

// 模拟参数
const (
	// fadeFrames 停止后淡出持续的帧数
	fadeFrames = 100

	// fadeThreshold 透明度降到该值及以下时重置
	fadeThreshold = 0.15

	// refreshOpacity 运行中重置后的透明度（大于 1，绘制时截断）
	refreshOpacity = 1.2

	// restartOpacity 越界重生后的透明度
	restartOpacity = 0.4

	// 每帧透明度衰减
	runningDecay = 0.005
	fadingDecay  = 0.035

	// 位移缩放除数
	horizontalDivisor = 1500.0
	verticalDivisor   = 800.0

	// cel 闪烁的随机除数上限
	flickerDivisor = 7
)

// stepBounds 单帧模拟需要的表面信息
type stepBounds struct {
	Width, Height float64
	Speed         float64
	MinSize       int
	MaxSize       int
}

// stepParticle 推进单个粒子一帧
//
// 每个方向每帧最多重定位一次：右/左、下/上分别用 else-if 判断。
// 垂直越界同时随机横坐标，水平越界不改纵坐标。
func stepParticle(p *Particle, rng *rand.Rand, b stepBounds, fading bool, timestamp int64) {
	if rng.Float64() > rng.Float64()*2 {
		p.Position.X += p.Delta.X * b.Speed / horizontalDivisor
	}
	if rng.Float64() < rng.Float64()*5 {
		p.Position.Y += p.Delta.Y * b.Speed / verticalDivisor
	}

	margin := float64(b.MaxSize)
	wrapped := false

	if p.Position.X > b.Width {
		p.Position.X = -margin
		wrapped = true
	} else if p.Position.X < -margin {
		p.Position.X = b.Width
		wrapped = true
	}

	if p.Position.Y > b.Height {
		p.Position.Y = -margin
		p.Position.X = math.Floor(rng.Float64() * b.Width)
		wrapped = true
	} else if p.Position.Y < -margin {
		p.Position.Y = b.Height
		p.Position.X = math.Floor(rng.Float64() * b.Width)
		wrapped = true
	}

	if wrapped {
		p.Size = math.Floor(rng.Float64()*float64(b.MaxSize-b.MinSize+1) + float64(b.MinSize))
		if fading {
			// 淡出期间透明度只降不升
			p.Opacity = math.Min(p.Opacity, restartOpacity)
		} else {
			p.Opacity = restartOpacity
		}
	}

	if fading {
		p.Opacity -= fadingDecay
	} else {
		p.Opacity -= runningDecay
	}

	if p.Opacity <= fadeThreshold {
		if fading {
			p.Opacity = 0
		} else {
			p.Opacity = refreshOpacity
		}
	}

	divisor := int64(math.Floor(rng.Float64()*flickerDivisor + 1))
	if timestamp%divisor == 0 {
		p.Cel = randomCel(rng)
	}
}
