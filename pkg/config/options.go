package config

import "strings"

// Options 闪光效果配置
//
// 使用 map 表示，便于与 YAML 解码结果直接对接，并保留未知键（合并时原样透传）。
// 所有值都不做校验：非法值只会造成视觉异常，不会报错。
//
// 支持的键:
//   - color:     颜色字符串、颜色字符串列表，或 "rainbow"（每个粒子随机颜色）
//   - count:     同时模拟的粒子数量
//   - overlap:   覆盖层超出目标元素边界的像素数
//   - speed:     每帧位移的速度乘数
//   - minSize:   粒子最小尺寸（像素，含）
//   - maxSize:   粒子最大尺寸（像素，含）
//   - direction: 垂直方向偏好 "up" / "down" / "both"
type Options map[string]any

// 配置键常量
const (
	KeyColor     = "color"
	KeyCount     = "count"
	KeyOverlap   = "overlap"
	KeySpeed     = "speed"
	KeyMinSize   = "minSize"
	KeyMaxSize   = "maxSize"
	KeyDirection = "direction"
)

// RainbowColor 彩虹哨兵值：每个粒子生成独立的随机十六进制颜色
const RainbowColor = "rainbow"

// Direction 垂直方向偏好
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionBoth Direction = "both"
)

// defaultOptions 默认配置（只读，外部只能通过 DefaultOptions 获取副本）
var defaultOptions = Options{
	KeyColor:     "#FFFFFF",
	KeyCount:     30,
	KeyOverlap:   0,
	KeySpeed:     1,
	KeyMinSize:   4,
	KeyMaxSize:   7,
	KeyDirection: string(DirectionBoth),
}

// DefaultOptions 返回默认配置的副本
func DefaultOptions() Options {
	return Merge(defaultOptions, nil)
}

// Merge 合并配置
//
// 返回一个新的 map：先复制 base 的所有键，再用 override 中出现的键覆盖。
// 两侧的未知键都原样保留。base 和 override 均不会被修改。
func Merge(base, override Options) Options {
	merged := make(Options, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

// Count 粒子数量
func (o Options) Count() int {
	return int(o.number(KeyCount))
}

// Overlap 覆盖层外扩像素
func (o Options) Overlap() float64 {
	return o.number(KeyOverlap)
}

// Speed 速度乘数
func (o Options) Speed() float64 {
	return o.number(KeySpeed)
}

// MinSize 粒子最小尺寸
func (o Options) MinSize() int {
	return int(o.number(KeyMinSize))
}

// MaxSize 粒子最大尺寸
func (o Options) MaxSize() int {
	return int(o.number(KeyMaxSize))
}

// Direction 垂直方向偏好，未识别的值按 "both" 处理
func (o Options) Direction() Direction {
	s, _ := o[KeyDirection].(string)
	switch Direction(strings.ToLower(s)) {
	case DirectionUp:
		return DirectionUp
	case DirectionDown:
		return DirectionDown
	default:
		return DirectionBoth
	}
}

// Color 解析颜色配置
func (o Options) Color() ColorSpec {
	switch v := o[KeyColor].(type) {
	case string:
		if v == RainbowColor {
			return ColorSpec{Rainbow: true}
		}
		return ColorSpec{Literal: v}
	case []string:
		return ColorSpec{Choices: append([]string(nil), v...)}
	case []any:
		// YAML 解码得到的列表是 []any
		choices := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				choices = append(choices, s)
			}
		}
		return ColorSpec{Choices: choices}
	default:
		return ColorSpec{}
	}
}

// number 读取数值型配置，兼容 int / float / YAML 整数等类型
// 类型不匹配时返回 0
func (o Options) number(key string) float64 {
	switch v := o[key].(type) {
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// ColorSpec 颜色配置的三种形态
//
// 同一时刻只有一种生效：Rainbow > Choices > Literal。
// 全部为空表示不着色（只绘制精灵原色）。
type ColorSpec struct {
	Literal string
	Choices []string
	Rainbow bool
}

// IsZero 是否没有任何颜色配置
func (c ColorSpec) IsZero() bool {
	return !c.Rainbow && c.Literal == "" && len(c.Choices) == 0
}
