// Package demo 场景加载和闪光实例管理
//
// 与宿主无关：图形演示（pkg/app，ebiten）和终端演示（cmd/sparkles-term，tcell）共用。
package demo

import (
	"fmt"
	"log"

	"github.com/decker502/sparkles/pkg/config"
	"github.com/decker502/sparkles/pkg/dom"
)

// 默认配置路径（嵌入资源中的路径，也可以是文件系统路径）
const (
	DefaultScenePath   = "data/scenes/demo.yaml"
	DefaultPresetsPath = "data/presets.yaml"
)

// Config 定义演示启动配置
type Config struct {
	// Verbose 启用详细日志输出，并为覆盖层绘制调试边框
	Verbose bool
	// ScenePath 场景文件路径
	ScenePath string
	// PresetsPath 预设文件路径
	PresetsPath string
	// Preset 非空时所有元素都使用该预设，忽略场景文件中的设置
	Preset string
}

// Demo 加载后的场景和预设
type Demo struct {
	Scene   *config.SceneConfig
	Presets *config.PresetConfig
}

// Load 加载场景和预设，并应用 Preset 覆盖
func Load(cfg Config) (*Demo, error) {
	scenePath := cfg.ScenePath
	if scenePath == "" {
		scenePath = DefaultScenePath
	}
	presetsPath := cfg.PresetsPath
	if presetsPath == "" {
		presetsPath = DefaultPresetsPath
	}

	presets, err := config.LoadPresetConfig(presetsPath)
	if err != nil {
		return nil, fmt.Errorf("预设加载失败: %w", err)
	}
	sceneCfg, err := config.LoadSceneConfig(scenePath)
	if err != nil {
		return nil, fmt.Errorf("场景加载失败: %w", err)
	}

	if cfg.Preset != "" {
		if _, ok := presets.Get(cfg.Preset); !ok {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", cfg.Preset, presets.Names())
		}
		for i := range sceneCfg.Elements {
			sceneCfg.Elements[i].Preset = cfg.Preset
		}
	}

	log.Printf("[Demo] Loaded scene %q: %d elements, %d presets", scenePath, len(sceneCfg.Elements), len(presets.Presets))
	return &Demo{Scene: sceneCfg, Presets: presets}, nil
}

// AttachAll 为场景中的每个元素创建闪光实例
// lookup 把场景元素名称映射到宿主元素
func (d *Demo) AttachAll(overlays *Overlays, lookup func(name string) (dom.Element, bool)) error {
	for _, ec := range d.Scene.Elements {
		el, ok := lookup(ec.Name)
		if !ok {
			return fmt.Errorf("element %q not found in document", ec.Name)
		}
		overlays.Attach(Target{
			Name:    ec.Name,
			Element: el,
			Preset:  ec.Preset,
			Options: ec.Options,
		})
	}
	return nil
}

// AbsoluteBoxes 把相对父元素的盒展开为文档坐标
//
// 父元素必须先于子元素声明（SceneConfig.Validate 保证）。
// 供只有顶层元素的宿主使用。
func AbsoluteBoxes(elements []config.ElementConfig) map[string]dom.Rect {
	boxes := make(map[string]dom.Rect, len(elements))
	for _, ec := range elements {
		box := dom.Rect{X: ec.X, Y: ec.Y, Width: ec.Width, Height: ec.Height}
		if parent, ok := boxes[ec.Parent]; ok && ec.Parent != "" {
			box.X += parent.X
			box.Y += parent.Y
		}
		boxes[ec.Name] = box
	}
	return boxes
}
