//go:build !(js && wasm)

package main

import (
	"flag"
	"log"

	_ "github.com/ebitengine/hideconsole"

	"github.com/decker502/stickcatch/pkg/app"
	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	variant    = flag.String("variant", "", "规则集: simple 或 enhanced（默认使用上次的选择）")
	seed       = flag.Int64("seed", 0, "随机种子，非零时每局生成顺序固定")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	fullscreen = flag.Bool("fullscreen", false, "全屏启动")
)

func main() {
	flag.Parse()

	embedded.Init(resourcesFS)

	game, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Variant:    *variant,
		Seed:       *seed,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("启动失败: %v", err)
	}

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(game.Fullscreen())

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
