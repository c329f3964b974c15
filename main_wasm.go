//go:build js && wasm

package main

import (
	"log"
	"syscall/js"

	"github.com/decker502/stickcatch/pkg/app"
	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	embedded.Init(resourcesFS)

	// 网页端没有命令行参数，使用上次保存的规则集
	game, err := app.NewApp(app.Config{})
	if err != nil {
		log.Fatal(err)
	}

	js.Global().Set("getScore", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return js.ValueOf(game.Score())
	}))

	w, h := game.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(config.WindowTitle)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
