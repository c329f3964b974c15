// Package scenes 包含 Ebitengine 前端的场景
//
// CatchScene 把玩法控制器装配到沙箱上，并负责读取输入与绘制。
// 所有玩法规则都在 gameplay 包中，场景只做转发。
package scenes

import (
	"github.com/decker502/stickcatch/pkg/game"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene
