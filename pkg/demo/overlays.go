package demo

import (
	"log"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/dom"
	"github.com/decker502/sparkles/pkg/sparkles"
)

// Target 挂载闪光的元素
type Target struct {
	Name    string
	Element dom.Element
	// Preset 当前预设名称，可以为空
	Preset string
	// Options 预设之上的覆盖配置
	Options config.Options
}

// overlay 一个元素上的闪光实例及其来源配置
type overlay struct {
	target   Target
	instance *sparkles.Sparkles
}

// Overlays 管理场景中所有元素上的闪光实例
//
// 与宿主无关：图形和终端演示程序共用。
type Overlays struct {
	doc      dom.Document
	presets  *config.PresetConfig
	overlays []*overlay
	removed  bool

	// retired 已移除、等待淡出结束后释放表面的实例
	retired []*sparkles.Sparkles
}

// NewOverlays 创建实例管理器，presets 可以为 nil
func NewOverlays(doc dom.Document, presets *config.PresetConfig) *Overlays {
	return &Overlays{
		doc:     doc,
		presets: presets,
	}
}

// Attach 在目标元素上创建闪光实例
func (o *Overlays) Attach(target Target) *sparkles.Sparkles {
	ov := &overlay{target: target}
	ov.instance = sparkles.New(o.doc, target.Element, o.resolve(target))
	o.overlays = append(o.overlays, ov)
	log.Printf("[Overlays] Attached %q (preset=%q)", target.Name, target.Preset)
	return ov.instance
}

// resolve 预设 + 覆盖配置，未知预设记录警告后忽略
func (o *Overlays) resolve(target Target) config.Options {
	opts, ok := o.presets.Resolve(target.Preset, target.Options)
	if !ok {
		log.Printf("[Overlays] Warning: unknown preset %q for %q", target.Preset, target.Name)
	}
	return opts
}

// Len 实例数量
func (o *Overlays) Len() int {
	return len(o.overlays)
}

// Get 按元素名称查找实例
func (o *Overlays) Get(name string) (*sparkles.Sparkles, bool) {
	for _, ov := range o.overlays {
		if ov.target.Name == name {
			return ov.instance, true
		}
	}
	return nil, false
}

// Preset 元素当前使用的预设
func (o *Overlays) Preset(name string) string {
	for _, ov := range o.overlays {
		if ov.target.Name == name {
			return ov.target.Preset
		}
	}
	return ""
}

// StartAll 开始所有实例，移除状态下不做任何事
func (o *Overlays) StartAll() {
	if o.removed {
		return
	}
	for _, ov := range o.overlays {
		ov.instance.Start()
	}
}

// StopAll 所有实例进入淡出，移除状态下不做任何事
func (o *Overlays) StopAll() {
	if o.removed {
		return
	}
	for _, ov := range o.overlays {
		ov.instance.Stop()
	}
}

// CyclePreset 把元素切换到下一个预设（按名称排序循环），返回新预设名
//
// 新配置在默认值之上完整应用，不继承上一个预设的字段；元素自己的覆盖配置保留。
func (o *Overlays) CyclePreset(name string) (string, bool) {
	if o.presets == nil || len(o.presets.Presets) == 0 {
		return "", false
	}

	for _, ov := range o.overlays {
		if ov.target.Name != name {
			continue
		}

		next := nextName(o.presets.Names(), ov.target.Preset)
		ov.target.Preset = next
		ov.instance.Update(config.Merge(config.DefaultOptions(), o.resolve(ov.target)))
		log.Printf("[Overlays] %q -> preset %q", name, next)
		return next, true
	}
	return "", false
}

// nextName 循环取 current 之后的名称；current 不在列表中时取第一个
func nextName(names []string, current string) string {
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Removed 是否处于移除状态
func (o *Overlays) Removed() bool {
	return o.removed
}

// ToggleRemoved 移除全部实例的事件监听；再次调用时在同一元素上重新创建
//
// 被移除的实例会自行淡出，淡出结束后由 ReleaseIdle 释放表面。
func (o *Overlays) ToggleRemoved() bool {
	if !o.removed {
		for _, ov := range o.overlays {
			ov.instance.Remove()
			o.retired = append(o.retired, ov.instance)
		}
		o.removed = true
		log.Printf("[Overlays] Removed %d instances", len(o.overlays))
		return o.removed
	}

	for _, ov := range o.overlays {
		ov.instance = sparkles.New(o.doc, ov.target.Element, o.resolve(ov.target))
	}
	o.removed = false
	log.Printf("[Overlays] Reattached %d instances", len(o.overlays))
	return o.removed
}

// ReleaseIdle 释放已经回到 idle 的被移除实例的表面，返回释放数量
//
// 每帧在文档 Tick 之后调用一次。
func (o *Overlays) ReleaseIdle() int {
	if len(o.retired) == 0 {
		return 0
	}

	kept := o.retired[:0]
	released := 0
	for _, sp := range o.retired {
		if sp.Mode() != sparkles.ModeIdle {
			kept = append(kept, sp)
			continue
		}
		if surface := sp.Surface(); surface != nil {
			o.doc.ReleaseSurface(surface)
		}
		released++
	}
	for i := len(kept); i < len(o.retired); i++ {
		o.retired[i] = nil
	}
	o.retired = kept

	if released > 0 {
		log.Printf("[Overlays] Released %d surfaces, %d still fading", released, len(o.retired))
	}
	return released
}

// Retired 等待释放的实例数量
func (o *Overlays) Retired() int {
	return len(o.retired)
}
