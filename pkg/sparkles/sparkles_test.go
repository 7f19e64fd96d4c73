package sparkles

import (
	"errors"
	"testing"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/dom"
)

// newTestSparkles 创建使用固定随机种子的实例
func newTestSparkles(t *testing.T, tag string, w, h float64, opts config.Options) (*Sparkles, *fakeDocument, *fakeElement, *fakeSurface) {
	t.Helper()
	doc := newFakeDocument()
	el := newFakeElement(tag, w, h)
	s := New(doc, el, opts)
	if s == nil {
		t.Fatal("New returned nil for a valid element")
	}
	s.rng = newTestRand()
	return s, doc, el, doc.surfaces[0]
}

// TestNew_NilElement 没有目标元素时返回 nil，且方法调用安全
func TestNew_NilElement(t *testing.T) {
	doc := newFakeDocument()
	s := New(doc, nil, config.Options{config.KeyCount: 5})
	if s != nil {
		t.Fatal("Expected nil instance without element")
	}
	if len(doc.surfaces) != 0 {
		t.Error("No surface should be created without element")
	}

	// nil 实例的方法都是空操作
	s.Start()
	s.Stop()
	s.Update(config.Options{config.KeyCount: 1})
	s.Remove()
	if s.Mode() != ModeIdle || s.Particles() != nil || s.Surface() != nil || s.Options() != nil {
		t.Error("nil instance accessors should return zero values")
	}
}

// TestNew_ExampleScenario 200x100 元素，{count: 5, direction: up}
func TestNew_ExampleScenario(t *testing.T) {
	s, doc, el, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{
		config.KeyCount:     5,
		config.KeyDirection: "up",
	})

	particles := s.Particles()
	if len(particles) != 5 {
		t.Fatalf("Expected 5 particles, got %d", len(particles))
	}
	for i, p := range particles {
		if p.Delta.Y >= 0 {
			t.Errorf("Particle %d dy=%f should be negative for direction up", i, p.Delta.Y)
		}
	}

	// 不自动开始
	if s.Mode() != ModeIdle {
		t.Errorf("Expected idle after construction, got %s", s.Mode())
	}
	if surface.Visible() {
		t.Error("Surface should start hidden")
	}
	if doc.pending() != 0 {
		t.Errorf("No frame should be scheduled after construction, got %d", doc.pending())
	}

	// 三个事件监听
	if n := el.listenerCount(); n != 3 {
		t.Errorf("Expected 3 listeners, got %d", n)
	}
}

// TestNew_SurfaceSetup 表面尺寸、类名、指针事件
func TestNew_SurfaceSetup(t *testing.T) {
	_, _, el, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{config.KeyOverlap: 10})

	if surface.class != SurfaceClass {
		t.Errorf("Expected class %q, got %q", SurfaceClass, surface.class)
	}
	if surface.w != 220 || surface.h != 120 {
		t.Errorf("Expected 220x120 surface, got %dx%d", surface.w, surface.h)
	}
	if surface.left != -10 || surface.top != -10 {
		t.Errorf("Expected offset (-10, -10), got (%f, %f)", surface.left, surface.top)
	}
	if !surface.pointerEventsSet || surface.pointerEvents {
		t.Error("Surface must not intercept pointer events")
	}
	if len(el.children) != 1 || el.children[0] != surface {
		t.Errorf("Surface should be appended as child, children=%d", len(el.children))
	}
	if len(el.siblings) != 0 {
		t.Error("Surface should not be inserted as sibling for DIV")
	}
}

// TestNew_VoidElement 空元素的覆盖层作为兄弟节点插入
func TestNew_VoidElement(t *testing.T) {
	for _, tag := range []string{"IMG", "img", "BR", "HR", "INPUT"} {
		t.Run(tag, func(t *testing.T) {
			_, _, el, surface := newTestSparkles(t, tag, 64, 32, config.Options{config.KeyOverlap: 4})

			if len(el.siblings) != 1 || len(el.children) != 0 {
				t.Fatalf("Expected sibling insertion, siblings=%d children=%d", len(el.siblings), len(el.children))
			}
			// 兄弟节点坐标相对父节点：元素偏移 - overlap
			if surface.left != el.box.X-4 || surface.top != el.box.Y-4 {
				t.Errorf("Expected offset (%f, %f), got (%f, %f)", el.box.X-4, el.box.Y-4, surface.left, surface.top)
			}
		})
	}
}

// TestNew_RawStyles static 元素改为 relative；整数层级 +1
func TestNew_RawStyles(t *testing.T) {
	t.Run("static becomes relative", func(t *testing.T) {
		_, _, el, surface := newTestSparkles(t, "DIV", 10, 10, nil)
		if el.style.Position != dom.PositionRelative {
			t.Errorf("Expected relative, got %q", el.style.Position)
		}
		if surface.zSet {
			t.Error("z-index should not be set for auto")
		}
	})

	t.Run("absolute kept and z-index raised", func(t *testing.T) {
		doc := newFakeDocument()
		el := newFakeElement("DIV", 10, 10)
		el.style = dom.Style{Position: dom.PositionAbsolute, ZIndex: "3"}
		New(doc, el, nil)

		if el.style.Position != dom.PositionAbsolute {
			t.Errorf("Non-static position should be kept, got %q", el.style.Position)
		}
		surface := doc.surfaces[0]
		if !surface.zSet || surface.z != 4 {
			t.Errorf("Expected surface z-index 4, got %d (set=%v)", surface.z, surface.zSet)
		}
	})
}

// TestStart 开始后可见、运行，并且只有一个待执行帧
func TestStart(t *testing.T) {
	s, doc, _, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{config.KeyCount: 8})

	s.Start()

	if s.Mode() != ModeRunning {
		t.Fatalf("Expected running, got %s", s.Mode())
	}
	if !surface.Visible() {
		t.Error("Surface should be visible after Start")
	}
	if doc.pending() != 1 {
		t.Fatalf("Expected 1 pending frame, got %d", doc.pending())
	}

	doc.runFrames(10)
	if doc.pending() != 1 {
		t.Errorf("Loop should keep exactly one pending frame, got %d", doc.pending())
	}
	if surface.clears != 10 {
		t.Errorf("Expected 10 redraws, got %d", surface.clears)
	}
}

// TestStart_WhileRunning 运行中再次 Start 取消旧帧，不产生重复循环
func TestStart_WhileRunning(t *testing.T) {
	s, doc, _, _ := newTestSparkles(t, "DIV", 200, 100, nil)

	s.Start()
	first := s.frame
	s.Start()

	if len(doc.cancelled) != 1 || doc.cancelled[0] != first {
		t.Errorf("Expected frame %d to be cancelled, got %v", first, doc.cancelled)
	}
	if doc.pending() != 1 {
		t.Errorf("Expected exactly 1 pending frame, got %d", doc.pending())
	}

	// 淡出中再次 Start：回到运行状态
	s.Stop()
	doc.runFrames(5)
	s.Start()
	if s.Mode() != ModeRunning || s.FadeRemaining() != 0 {
		t.Errorf("Start should clear fading, mode=%s fade=%d", s.Mode(), s.FadeRemaining())
	}
	if doc.pending() != 1 {
		t.Errorf("Expected exactly 1 pending frame after restart, got %d", doc.pending())
	}
}

// TestStart_RebuildsOnResize Start 按元素当前尺寸重建
func TestStart_RebuildsOnResize(t *testing.T) {
	s, _, el, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{config.KeyCount: 12})

	el.box.Width, el.box.Height = 50, 40
	s.Start()

	if surface.w != 50 || surface.h != 40 {
		t.Errorf("Expected surface resized to 50x40, got %dx%d", surface.w, surface.h)
	}
	for _, p := range s.Particles() {
		if p.Position.X >= 50 || p.Position.Y >= 40 {
			t.Fatalf("Particle (%f, %f) outside resized surface", p.Position.X, p.Position.Y)
		}
	}
}

// TestStop_FadeOut 停止后经过淡出帧数隐藏表面并停止调度
func TestStop_FadeOut(t *testing.T) {
	s, doc, _, surface := newTestSparkles(t, "DIV", 200, 100, nil)

	s.Start()
	doc.runFrames(3)
	s.Stop()

	if s.Mode() != ModeFadingOut {
		t.Fatalf("Expected fading-out, got %s", s.Mode())
	}
	if s.FadeRemaining() != fadeFrames {
		t.Errorf("Expected countdown %d, got %d", fadeFrames, s.FadeRemaining())
	}

	doc.runFrames(fadeFrames - 1)
	if !surface.Visible() || s.Mode() != ModeFadingOut {
		t.Fatalf("Should still be fading one frame before the end, visible=%v mode=%s", surface.Visible(), s.Mode())
	}

	doc.runFrame()
	if surface.Visible() {
		t.Error("Surface should be hidden after fade-out")
	}
	if s.Mode() != ModeIdle {
		t.Errorf("Expected idle after fade-out, got %s", s.Mode())
	}
	if doc.pending() != 0 {
		t.Errorf("No frame should be scheduled after fade-out, got %d", doc.pending())
	}

	// 淡出结束时所有粒子已透明
	for i, p := range s.Particles() {
		if p.Opacity != 0 {
			t.Errorf("Particle %d opacity %f after fade-out", i, p.Opacity)
		}
	}
}

// TestStop_WhileIdle 未开始时停止不产生任何调度
func TestStop_WhileIdle(t *testing.T) {
	s, doc, _, _ := newTestSparkles(t, "DIV", 200, 100, nil)
	s.Stop()

	if s.Mode() != ModeIdle {
		t.Errorf("Expected idle, got %s", s.Mode())
	}
	if doc.pending() != 0 {
		t.Errorf("Expected no pending frames, got %d", doc.pending())
	}
}

// TestUpdate 合并配置并立即重建
func TestUpdate(t *testing.T) {
	s, doc, _, surface := newTestSparkles(t, "DIV", 200, 100, nil)

	s.Update(config.Options{config.KeyCount: 7})
	if n := len(s.Particles()); n != 7 {
		t.Errorf("Expected 7 particles after update, got %d", n)
	}
	if s.Options().Speed() != 1 {
		t.Error("Update should keep unrelated options")
	}

	// 不改变运行状态和可见性
	if s.Mode() != ModeIdle || surface.Visible() || doc.pending() != 0 {
		t.Error("Update must not start the animation")
	}

	s.Start()
	s.Update(config.Options{config.KeyCount: 3, config.KeyColor: "rainbow"})
	if n := len(s.Particles()); n != 3 {
		t.Errorf("Expected 3 particles after update, got %d", n)
	}
	if s.Mode() != ModeRunning || !surface.Visible() {
		t.Error("Update must not stop a running animation")
	}

	doc.runFrame()
	if len(surface.draws) != 3 {
		t.Errorf("Expected 3 sprite draws after update, got %d", len(surface.draws))
	}
}

// TestUpdate_Nil nil 配置不做任何事
func TestUpdate_Nil(t *testing.T) {
	s, _, _, _ := newTestSparkles(t, "DIV", 200, 100, nil)
	before := s.Particles()

	s.Update(nil)

	after := s.Particles()
	if len(before) != len(after) {
		t.Fatalf("Particle count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Position != after[i].Position {
			t.Fatal("Update(nil) rebuilt the particle set")
		}
	}
}

// TestEvents 鼠标移入开始、移出淡出、resize 重建
func TestEvents(t *testing.T) {
	s, _, el, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{config.KeyCount: 4})

	el.dispatch(dom.EventMouseOver)
	if s.Mode() != ModeRunning {
		t.Fatalf("mouseover should start, got %s", s.Mode())
	}

	el.dispatch(dom.EventMouseOut)
	if s.Mode() != ModeFadingOut {
		t.Fatalf("mouseout should stop, got %s", s.Mode())
	}

	el.box.Width, el.box.Height = 30, 30
	el.dispatch(dom.EventResize)
	if surface.w != 30 || surface.h != 30 {
		t.Errorf("resize should resize surface, got %dx%d", surface.w, surface.h)
	}
	if n := len(s.Particles()); n != 4 {
		t.Errorf("resize rebuild should keep count, got %d", n)
	}
	if s.Mode() != ModeFadingOut {
		t.Error("resize must not change the animation mode")
	}
}

// TestRemove 移除监听并淡出
func TestRemove(t *testing.T) {
	s, doc, el, surface := newTestSparkles(t, "DIV", 200, 100, nil)

	s.Start()
	s.Remove()

	if n := el.listenerCount(); n != 0 {
		t.Errorf("Expected all listeners removed, got %d", n)
	}
	if s.Mode() != ModeFadingOut {
		t.Errorf("Remove should stop, got %s", s.Mode())
	}
	// 不立即隐藏
	if !surface.Visible() {
		t.Error("Remove should not hide immediately")
	}

	doc.runFrames(fadeFrames)
	if surface.Visible() || doc.pending() != 0 {
		t.Error("Surface should be hidden after fade-out following Remove")
	}

	// 移除后事件不再生效
	el.dispatch(dom.EventMouseOver)
	if s.Mode() != ModeIdle {
		t.Error("Events after Remove must be ignored")
	}

	// 重复调用安全
	s.Remove()
}

// TestDraw 每帧清空后绘制精灵和着色层
func TestDraw(t *testing.T) {
	s, doc, _, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{
		config.KeyCount: 6,
		config.KeyColor: "#FF0000",
	})

	s.Start()
	doc.runFrame()

	if surface.clears != 1 {
		t.Errorf("Expected 1 clear, got %d", surface.clears)
	}
	if len(surface.draws) != 6 {
		t.Fatalf("Expected 6 sprite draws, got %d", len(surface.draws))
	}
	if len(surface.tints) != 6 {
		t.Fatalf("Expected 6 tints, got %d", len(surface.tints))
	}

	particles := s.Particles()
	for i, d := range surface.draws {
		p := particles[i]
		if d.alpha < 0 || d.alpha > 1 {
			t.Errorf("Draw %d alpha %f not clamped", i, d.alpha)
		}
		if d.src.Dx() != spriteCelSize || d.src.Dy() != spriteCelSize {
			t.Errorf("Draw %d source %v is not a 7x7 cel", i, d.src)
		}
		if d.dst.Width != p.Size || d.dst.X != p.Position.X || d.dst.Y != p.Position.Y {
			t.Errorf("Draw %d dst %+v does not match particle %+v", i, d.dst, p)
		}
	}
	for i, tc := range surface.tints {
		if tc.alpha != tintAlpha {
			t.Errorf("Tint %d alpha %f, want %f", i, tc.alpha, tintAlpha)
		}
		if tc.dst.Width != spriteCelSize || tc.dst.Height != spriteCelSize {
			t.Errorf("Tint %d rect %+v should be 7x7", i, tc.dst)
		}
	}
}

// TestDraw_NoColor 无颜色时不着色
func TestDraw_NoColor(t *testing.T) {
	s, doc, _, surface := newTestSparkles(t, "DIV", 200, 100, config.Options{
		config.KeyCount: 4,
		config.KeyColor: "",
	})

	s.Start()
	doc.runFrame()

	if len(surface.tints) != 0 {
		t.Errorf("Expected no tints, got %d", len(surface.tints))
	}
	if len(surface.draws) != 4 {
		t.Errorf("Expected 4 sprite draws, got %d", len(surface.draws))
	}
}

// TestDraw_SpriteDecodeFailure 精灵解码失败时只绘制着色层
func TestDraw_SpriteDecodeFailure(t *testing.T) {
	doc := newFakeDocument()
	doc.decodeErr = errors.New("boom")
	el := newFakeElement("DIV", 100, 100)

	s := New(doc, el, config.Options{config.KeyCount: 3})
	if s == nil {
		t.Fatal("Decode failure must not prevent construction")
	}

	s.Start()
	doc.runFrame()

	surface := doc.surfaces[0]
	if len(surface.draws) != 0 {
		t.Errorf("Expected no sprite draws, got %d", len(surface.draws))
	}
	if len(surface.tints) != 3 {
		t.Errorf("Expected 3 tints, got %d", len(surface.tints))
	}
}

// TestNew_DefaultsNotMutated 实例配置修改不影响默认值
func TestNew_DefaultsNotMutated(t *testing.T) {
	s, _, _, _ := newTestSparkles(t, "DIV", 10, 10, config.Options{config.KeyCount: 2})
	s.Update(config.Options{config.KeySpeed: 9})

	if config.DefaultOptions().Count() != 30 || config.DefaultOptions().Speed() != 1 {
		t.Error("Instance configuration leaked into defaults")
	}
}

// TestMode_String 状态名称
func TestMode_String(t *testing.T) {
	tests := map[Mode]string{
		ModeIdle:      "idle",
		ModeRunning:   "running",
		ModeFadingOut: "fading-out",
		Mode(99):      "unknown",
	}
	for m, want := range tests {
		if got := m.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", int(m), got, want)
		}
	}
}

// TestSpriteData 嵌入的精灵条是 PNG
func TestSpriteData(t *testing.T) {
	data := spriteData
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Error("Embedded sprite is not a PNG")
	}
}
