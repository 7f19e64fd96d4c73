package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/sparkles/pkg/embedded"
)

// PresetConfig 命名的闪光预设集合
//
// 配置文件位置: data/presets.yaml
//
//	presets:
//	  gold:
//	    color: ["#FFD700", "#FFC107"]
//	    count: 40
type PresetConfig struct {
	Presets map[string]Options `yaml:"presets"`
}

// LoadPresetConfig 加载预设配置
//
// 优先从嵌入资源读取，找不到时回退到文件系统（用户自定义路径）。
func LoadPresetConfig(path string) (*PresetConfig, error) {
	data, err := readConfigData(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset config: %w", err)
	}
	return ParsePresetConfig(data)
}

// ParsePresetConfig 从 YAML 字节解析预设配置
func ParsePresetConfig(data []byte) (*PresetConfig, error) {
	var config PresetConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse preset config: %w", err)
	}
	if config.Presets == nil {
		config.Presets = make(map[string]Options)
	}
	return &config, nil
}

// Names 返回按字母排序的预设名称
func (c *PresetConfig) Names() []string {
	names := make([]string, 0, len(c.Presets))
	for name := range c.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 返回预设的副本，调用方可以放心修改
func (c *PresetConfig) Get(name string) (Options, bool) {
	preset, ok := c.Presets[name]
	if !ok {
		return nil, false
	}
	return Merge(preset, nil), true
}

// Resolve 预设 + 覆盖配置
//
// name 为空时只返回覆盖配置；预设不存在时返回 false，覆盖配置仍然生效。
// c 为 nil 时视为没有任何预设。
func (c *PresetConfig) Resolve(name string, overrides Options) (Options, bool) {
	if name == "" {
		return Merge(nil, overrides), true
	}
	if c == nil {
		return Merge(nil, overrides), false
	}
	preset, ok := c.Get(name)
	return Merge(preset, overrides), ok
}

// readConfigData 读取配置文件内容
// 嵌入资源中存在时读嵌入资源，否则读文件系统
func readConfigData(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
