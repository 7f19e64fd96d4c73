package sparkles

import (
	"errors"
	"image"
	"image/color"
	"sort"

	"github.com/decker502/sparkles/pkg/dom"
)

// 测试用宿主实现：记录所有调用，帧由测试手动推进

type fakeImage struct{ w, h int }

func (i *fakeImage) Size() (int, int) { return i.w, i.h }

type drawCall struct {
	src   image.Rectangle
	dst   dom.Rect
	alpha float64
}

type tintCall struct {
	c     color.Color
	dst   dom.Rect
	alpha float64
}

type fakeSurface struct {
	class            string
	w, h             int
	left, top        float64
	z                int
	zSet             bool
	visible          bool
	pointerEvents    bool
	pointerEventsSet bool
	clears           int
	draws            []drawCall
	tints            []tintCall
	sizeHistory      [][2]int
}

func (s *fakeSurface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.sizeHistory = append(s.sizeHistory, [2]int{w, h})
}
func (s *fakeSurface) Size() (int, int)            { return s.w, s.h }
func (s *fakeSurface) SetOffset(left, top float64) { s.left, s.top = left, top }
func (s *fakeSurface) SetZIndex(z int)             { s.z, s.zSet = z, true }
func (s *fakeSurface) SetVisible(v bool)           { s.visible = v }
func (s *fakeSurface) Visible() bool               { return s.visible }
func (s *fakeSurface) SetPointerEvents(enabled bool) {
	s.pointerEvents = enabled
	s.pointerEventsSet = true
}
func (s *fakeSurface) Clear() {
	s.clears++
	s.draws = s.draws[:0]
	s.tints = s.tints[:0]
}
func (s *fakeSurface) DrawImage(img dom.Image, src image.Rectangle, dst dom.Rect, alpha float64) {
	s.draws = append(s.draws, drawCall{src: src, dst: dst, alpha: alpha})
}
func (s *fakeSurface) FillRectAtop(c color.Color, dst dom.Rect, alpha float64) {
	s.tints = append(s.tints, tintCall{c: c, dst: dst, alpha: alpha})
}

type fakeElement struct {
	tag       string
	box       dom.Rect
	style     dom.Style
	children  []dom.Surface
	siblings  []dom.Surface
	nextID    dom.ListenerID
	listeners map[dom.EventType]map[dom.ListenerID]func()
}

func newFakeElement(tag string, w, h float64) *fakeElement {
	return &fakeElement{
		tag:       tag,
		box:       dom.Rect{X: 10, Y: 20, Width: w, Height: h},
		style:     dom.Style{Position: dom.PositionStatic, ZIndex: dom.ZIndexAuto},
		listeners: make(map[dom.EventType]map[dom.ListenerID]func()),
	}
}

func (e *fakeElement) TagName() string          { return e.tag }
func (e *fakeElement) OffsetBox() dom.Rect       { return e.box }
func (e *fakeElement) ComputedStyle() dom.Style  { return e.style }
func (e *fakeElement) SetPosition(p string)      { e.style.Position = p }
func (e *fakeElement) AppendChild(s dom.Surface) { e.children = append(e.children, s) }
func (e *fakeElement) InsertAfter(s dom.Surface) { e.siblings = append(e.siblings, s) }
func (e *fakeElement) AddEventListener(ev dom.EventType, fn func()) dom.ListenerID {
	e.nextID++
	if e.listeners[ev] == nil {
		e.listeners[ev] = make(map[dom.ListenerID]func())
	}
	e.listeners[ev][e.nextID] = fn
	return e.nextID
}
func (e *fakeElement) RemoveEventListener(ev dom.EventType, id dom.ListenerID) {
	delete(e.listeners[ev], id)
}

func (e *fakeElement) dispatch(ev dom.EventType) {
	for _, fn := range e.listeners[ev] {
		fn()
	}
}

func (e *fakeElement) listenerCount() int {
	n := 0
	for _, m := range e.listeners {
		n += len(m)
	}
	return n
}

type fakeDocument struct {
	surfaces  []*fakeSurface
	nextFrame dom.FrameID
	frames    map[dom.FrameID]dom.FrameCallback
	cancelled []dom.FrameID
	decodeErr error
	now       float64
	released  []*fakeSurface
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{frames: make(map[dom.FrameID]dom.FrameCallback)}
}

func (d *fakeDocument) CreateSurface(class string) dom.Surface {
	s := &fakeSurface{class: class, pointerEvents: true}
	d.surfaces = append(d.surfaces, s)
	return s
}

func (d *fakeDocument) ReleaseSurface(s dom.Surface) {
	if fs, ok := s.(*fakeSurface); ok {
		d.released = append(d.released, fs)
	}
}

func (d *fakeDocument) DecodeImage(data []byte) (dom.Image, error) {
	if d.decodeErr != nil {
		return nil, d.decodeErr
	}
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	return &fakeImage{w: 27, h: 7}, nil
}

func (d *fakeDocument) RequestAnimationFrame(fn dom.FrameCallback) dom.FrameID {
	d.nextFrame++
	d.frames[d.nextFrame] = fn
	return d.nextFrame
}

func (d *fakeDocument) CancelAnimationFrame(id dom.FrameID) {
	if _, ok := d.frames[id]; ok {
		d.cancelled = append(d.cancelled, id)
		delete(d.frames, id)
	}
}

// runFrame 执行本帧之前请求的所有回调，回调中新请求的帧留到下一帧
func (d *fakeDocument) runFrame() {
	d.now += 16.667
	ids := make([]dom.FrameID, 0, len(d.frames))
	for id := range d.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	pending := d.frames
	d.frames = make(map[dom.FrameID]dom.FrameCallback)
	for _, id := range ids {
		pending[id](d.now)
	}
}

func (d *fakeDocument) runFrames(n int) {
	for i := 0; i < n; i++ {
		d.runFrame()
	}
}

func (d *fakeDocument) pending() int { return len(d.frames) }
