package config

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// SceneConfig 演示场景配置
//
// 描述窗口尺寸和场景中的目标元素，每个元素挂载一个闪光实例。
//
// 配置文件位置: data/scenes/*.yaml
type SceneConfig struct {
	// Window 窗口设置
	Window WindowConfig `yaml:"window"`

	// Background 背景颜色（十六进制或颜色名）
	Background string `yaml:"background"`

	// Elements 场景元素列表（按绘制顺序）
	Elements []ElementConfig `yaml:"elements"`
}

// WindowConfig 窗口设置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ElementConfig 场景元素
type ElementConfig struct {
	// Name 元素名称（场景内唯一）
	Name string `yaml:"name"`

	// Tag 元素标签名，如 "DIV"、"IMG"
	// 空元素标签（IMG/BR/HR/INPUT）的覆盖层作为兄弟节点插入
	Tag string `yaml:"tag"`

	// Parent 父元素名称，空表示顶层；父元素必须在前面声明
	Parent string `yaml:"parent"`

	// 盒模型（相对父节点的像素坐标）
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Position 定位方式，默认 "static"
	Position string `yaml:"position"`

	// ZIndex 层级，"auto" 或整数字符串
	ZIndex string `yaml:"zIndex"`

	// Fill 元素填充色
	Fill string `yaml:"fill"`

	// Label 元素上显示的文字
	Label string `yaml:"label"`

	// Preset 使用的预设名称（可选）
	Preset string `yaml:"preset"`

	// Options 覆盖预设的闪光配置（可选）
	Options Options `yaml:"options"`
}

// LoadSceneConfig 加载场景配置
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := readConfigData(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}
	return ParseSceneConfig(data)
}

// ParseSceneConfig 从 YAML 字节解析场景配置并校验
func ParseSceneConfig(data []byte) (*SceneConfig, error) {
	var config SceneConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return &config, nil
}

// applyDefaults 填充缺省字段
func (c *SceneConfig) applyDefaults() {
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 600
	}
	if c.Window.Title == "" {
		c.Window.Title = "Sparkles"
	}
	for i := range c.Elements {
		el := &c.Elements[i]
		if el.Tag == "" {
			el.Tag = "DIV"
		}
		if el.Position == "" {
			el.Position = "static"
		}
		if el.ZIndex == "" {
			el.ZIndex = "auto"
		}
	}
}

// Validate 校验场景配置
//
// 只校验场景布局本身；闪光配置（Options）按约定不做校验。
func (c *SceneConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	seen := make(map[string]bool, len(c.Elements))
	for i, el := range c.Elements {
		if el.Name == "" {
			return fmt.Errorf("element %d: name is required", i)
		}
		if seen[el.Name] {
			return fmt.Errorf("element %q: duplicate name", el.Name)
		}
		seen[el.Name] = true

		if el.Parent != "" && (el.Parent == el.Name || !seen[el.Parent]) {
			return fmt.Errorf("element %q: parent %q must be declared before it", el.Name, el.Parent)
		}

		if el.Width < 0 || el.Height < 0 {
			return fmt.Errorf("element %q: negative size %.0fx%.0f", el.Name, el.Width, el.Height)
		}
		if el.ZIndex != "auto" {
			if _, err := strconv.Atoi(el.ZIndex); err != nil {
				return fmt.Errorf("element %q: zIndex must be \"auto\" or an integer, got %q", el.Name, el.ZIndex)
			}
		}
	}
	return nil
}
