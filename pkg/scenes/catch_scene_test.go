package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/stickcatch/pkg/game"
	"github.com/decker502/stickcatch/pkg/types"
	"github.com/quasilyte/gdata/v2"
)

const frame = 1.0 / 60.0

func newTestScene(t *testing.T, variant types.Variant, deps SceneDeps) *CatchScene {
	t.Helper()
	deps.Seed = 7
	s, err := NewCatchScene(deps, variant)
	if err != nil {
		t.Fatalf("NewCatchScene failed: %v", err)
	}
	return s
}

// runUntilOver 不接任何物体，直到本局结束
func runUntilOver(t *testing.T, s *CatchScene) {
	t.Helper()
	for i := 0; i < 60*60; i++ {
		s.sandbox.Step(frame)
		if s.controller.State().IsOver() {
			return
		}
	}
	t.Fatal("game did not end within a minute")
}

func TestCatchSceneWiring(t *testing.T) {
	s := newTestScene(t, types.VariantEnhanced, SceneDeps{})

	if s.Variant() != types.VariantEnhanced || s.Controller().Variant() != types.VariantEnhanced {
		t.Errorf("variant = %v / %v, want enhanced", s.Variant(), s.Controller().Variant())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
	if s.bestLabel.Visible() || s.hintLabel.Visible() {
		t.Error("overlay should start hidden")
	}

	// 沙箱每帧驱动控制器
	for i := 0; i < 61; i++ {
		s.sandbox.Step(frame)
	}
	if n := len(s.Controller().LiveObjects()); n != 1 {
		t.Errorf("after one second got %d objects, want 1", n)
	}
}

func TestCatchSceneRecordsHighScore(t *testing.T) {
	highScores := game.NewHighScoreManager(nil)
	s := newTestScene(t, types.VariantSimple, SceneDeps{HighScores: highScores})

	runUntilOver(t, s)

	if got := highScores.GamesPlayed(types.VariantSimple); got != 1 {
		t.Fatalf("games played = %d, want 1", got)
	}
	if got := highScores.Best(types.VariantSimple); got != s.Score() {
		t.Errorf("best = %d, want final score %d", got, s.Score())
	}
	if !strings.Contains(s.bestLabel.Text(), "Best:") {
		t.Errorf("best label = %q", s.bestLabel.Text())
	}
}

func TestCatchSceneSaveOnExit(t *testing.T) {
	s := newTestScene(t, types.VariantEnhanced, SceneDeps{})
	if !s.SaveOnExit() {
		t.Error("SaveOnExit without settings should succeed")
	}

	settings, _ := game.NewSettingsManager(nil)
	s = newTestScene(t, types.VariantEnhanced, SceneDeps{Settings: settings})
	if !s.SaveOnExit() {
		t.Error("SaveOnExit in degraded mode should succeed")
	}
	if settings.Variant() != types.VariantEnhanced {
		t.Errorf("saved variant = %v, want enhanced", settings.Variant())
	}
}

// openTestGdata 在临时目录中打开 gdata
func openTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_DATA_HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	gdataManager, err := gdata.Open(gdata.Config{AppName: "stickcatch_scenes_test"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gdataManager
}

func TestCatchSceneSwitchVariant(t *testing.T) {
	gd := openTestGdata(t)
	settings, err := game.NewSettingsManager(gd)
	if err != nil {
		t.Fatalf("NewSettingsManager failed: %v", err)
	}
	scenes := game.NewSceneManager()
	deps := SceneDeps{Settings: settings, Scenes: scenes}
	scenes.SetSceneFactory(func(v types.Variant) game.Scene {
		next, err := NewCatchScene(deps, v)
		if err != nil {
			t.Fatalf("NewCatchScene failed: %v", err)
		}
		return next
	})

	s := newTestScene(t, types.VariantSimple, deps)
	scenes.SwitchTo(s)

	s.switchVariant()

	current, ok := scenes.GetCurrentScene().(*CatchScene)
	if !ok || current == s {
		t.Fatal("scene manager should hold a new catch scene")
	}
	if current.Variant() != types.VariantEnhanced {
		t.Errorf("new scene variant = %v, want enhanced", current.Variant())
	}
	if settings.Variant() != types.VariantEnhanced {
		t.Errorf("settings variant = %v, want enhanced", settings.Variant())
	}

	// 不经过关闭窗口，重新加载也应读到新的选择
	reloaded, err := game.NewSettingsManager(gd)
	if err != nil {
		t.Fatalf("NewSettingsManager (reload) failed: %v", err)
	}
	if reloaded.Variant() != types.VariantEnhanced {
		t.Errorf("persisted variant = %v, want enhanced", reloaded.Variant())
	}
}

func TestOtherVariant(t *testing.T) {
	if otherVariant(types.VariantSimple) != types.VariantEnhanced {
		t.Error("simple should switch to enhanced")
	}
	if otherVariant(types.VariantEnhanced) != types.VariantSimple {
		t.Error("enhanced should switch to simple")
	}
}
