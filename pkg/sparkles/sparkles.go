// Package sparkles 在任意元素上叠加鼠标悬停触发的闪光粒子动画
//
// 每个实例拥有一个覆盖层表面、一个粒子集合和一个由宿主帧调度驱动的状态机：
//
//	idle ──Start──> running ──Stop──> fading-out ──倒计时结束──> idle
//	                   ^                    │
//	                   └───────Start────────┘
//
// 实例之间没有共享状态；所有方法都应在宿主帧循环的 goroutine 上调用。
package sparkles

import (
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/dom"
)

// Mode 动画状态
type Mode int

const (
	// ModeIdle 表面隐藏，没有待执行的帧
	ModeIdle Mode = iota
	// ModeRunning 表面可见，每帧调度
	ModeRunning
	// ModeFadingOut 正在淡出，倒计时结束后回到 idle
	ModeFadingOut
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRunning:
		return "running"
	case ModeFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

// Sparkles 单个元素上的闪光实例
//
// nil 实例的所有方法都是空操作，对应"没有目标元素"时的构造结果。
type Sparkles struct {
	doc     dom.Document
	element dom.Element

	options    config.Options
	surface    dom.Surface
	sprite     dom.Image
	particles  []Particle
	appendable bool
	rng        *rand.Rand

	mode      Mode
	fadeCount int
	frame     dom.FrameID

	listeners map[dom.EventType]dom.ListenerID
}

// New 在元素上创建闪光实例
//
// element 为 nil 时返回 nil。options 覆盖默认配置，可以为 nil。
// 创建后不会自动开始，鼠标移入元素时开始，移出时淡出。
func New(doc dom.Document, element dom.Element, options config.Options) *Sparkles {
	if element == nil || doc == nil {
		return nil
	}

	s := &Sparkles{
		doc:        doc,
		element:    element,
		options:    config.Merge(config.DefaultOptions(), options),
		appendable: isAppendable(element.TagName()),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		listeners:  make(map[dom.EventType]dom.ListenerID, 3),
	}

	s.createSurface()
	s.sprite = s.loadSprite()
	s.rebuild()

	s.applyRawStyles()
	s.insertSurface()

	s.listeners[dom.EventMouseOver] = element.AddEventListener(dom.EventMouseOver, s.Start)
	s.listeners[dom.EventMouseOut] = element.AddEventListener(dom.EventMouseOut, s.Stop)
	s.listeners[dom.EventResize] = element.AddEventListener(dom.EventResize, func() {
		s.resize(true)
	})

	return s
}

// loadSprite 解码嵌入的精灵条，失败时只记录日志（此后只绘制着色层）
func (s *Sparkles) loadSprite() dom.Image {
	img, err := s.doc.DecodeImage(spriteData)
	if err != nil {
		log.Printf("[Sparkles] Warning: failed to decode sprite: %v", err)
		return nil
	}
	return img
}

// Start 开始动画
//
// 取消待执行的帧、显示表面、清除淡出状态，立即按元素尺寸重建粒子并调度下一帧。
// 运行中再次调用只会重置，不会产生第二个循环。
func (s *Sparkles) Start() {
	if s == nil {
		return
	}

	s.cancelFrame()
	s.surface.SetVisible(true)
	s.mode = ModeRunning
	s.fadeCount = 0
	s.resize(true)
	s.schedule()
}

// Stop 进入淡出，由帧循环在倒计时结束后隐藏表面
func (s *Sparkles) Stop() {
	if s == nil {
		return
	}
	if s.mode == ModeIdle {
		return
	}

	s.mode = ModeFadingOut
	s.fadeCount = fadeFrames
}

// Update 合并新配置并立即重建粒子
//
// 不改变表面可见性和运行状态。options 为 nil 时不做任何事。
func (s *Sparkles) Update(options config.Options) {
	if s == nil || options == nil {
		return
	}

	s.options = config.Merge(s.options, options)
	s.rebuild()
}

// Remove 移除事件监听并进入淡出
//
// 不会立即隐藏，淡出结束后表面自动隐藏。
func (s *Sparkles) Remove() {
	if s == nil {
		return
	}

	for ev, id := range s.listeners {
		s.element.RemoveEventListener(ev, id)
		delete(s.listeners, ev)
	}
	s.Stop()
}

// Mode 当前动画状态
func (s *Sparkles) Mode() Mode {
	if s == nil {
		return ModeIdle
	}
	return s.mode
}

// FadeRemaining 淡出剩余帧数，非淡出状态为 0
func (s *Sparkles) FadeRemaining() int {
	if s == nil || s.mode != ModeFadingOut {
		return 0
	}
	return s.fadeCount
}

// Particles 当前粒子集合的副本
func (s *Sparkles) Particles() []Particle {
	if s == nil {
		return nil
	}
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Options 当前生效配置的副本
func (s *Sparkles) Options() config.Options {
	if s == nil {
		return nil
	}
	return config.Merge(s.options, nil)
}

// Surface 覆盖层表面
func (s *Sparkles) Surface() dom.Surface {
	if s == nil {
		return nil
	}
	return s.surface
}

// rebuild 按当前表面尺寸和配置重新生成全部粒子
func (s *Sparkles) rebuild() {
	width, height := s.surface.Size()
	s.particles = newParticles(s.rng, width, height, s.options)
}

// schedule 请求下一帧
func (s *Sparkles) schedule() {
	s.frame = s.doc.RequestAnimationFrame(s.tick)
}

// cancelFrame 取消待执行的帧
func (s *Sparkles) cancelFrame() {
	if s.frame != 0 {
		s.doc.CancelAnimationFrame(s.frame)
		s.frame = 0
	}
}

// tick 帧回调：推进粒子、绘制，然后调度下一帧或回到 idle
func (s *Sparkles) tick(timestamp float64) {
	s.frame = 0
	if s.mode == ModeIdle {
		return
	}

	fading := s.mode == ModeFadingOut
	width, height := s.surface.Size()
	bounds := stepBounds{
		Width:   float64(width),
		Height:  float64(height),
		Speed:   s.options.Speed(),
		MinSize: s.options.MinSize(),
		MaxSize: s.options.MaxSize(),
	}
	ts := int64(math.Floor(timestamp))

	for i := range s.particles {
		stepParticle(&s.particles[i], s.rng, bounds, fading, ts)
	}

	drawParticles(s.surface, s.sprite, s.particles)

	if fading {
		s.fadeCount--
		if s.fadeCount <= 0 {
			s.fadeCount = 0
			s.mode = ModeIdle
			s.surface.SetVisible(false)
			return
		}
	}
	s.schedule()
}
