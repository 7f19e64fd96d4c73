// Package main 闪光覆盖层图形演示
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--scene <path>     场景文件（默认 data/scenes/demo.yaml，优先读取嵌入资源）
//	--presets <path>   预设文件（默认 data/presets.yaml）
//	--preset <name>    所有元素使用同一个预设
//	--verbose          输出日志并绘制覆盖层边框
//
// Controls:
//
//	Mouse hover  - 悬停元素开始闪光，移出后淡出
//	S            - 全部开始
//	X            - 全部停止
//	U            - 悬停元素切换到下一个预设
//	+ / -        - 放大/缩小悬停元素（触发 resize）
//	R            - 移除/重新挂载全部实例
//	Q/Escape     - 退出
package main

import (
	"flag"
	"log"

	"github.com/decker502/sparkles/pkg/app"
	"github.com/decker502/sparkles/pkg/demo"
	"github.com/decker502/sparkles/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	sceneFlag   = flag.String("scene", demo.DefaultScenePath, "Scene file path")
	presetsFlag = flag.String("presets", demo.DefaultPresetsPath, "Preset file path")
	presetFlag  = flag.String("preset", "", "Use this preset for every element")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（配置文件）
	embedded.Init(dataFS)

	game, err := app.NewApp(demo.Config{
		Verbose:     *verboseFlag,
		ScenePath:   *sceneFlag,
		PresetsPath: *presetsFlag,
		Preset:      *presetFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	width, height := game.WindowSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
