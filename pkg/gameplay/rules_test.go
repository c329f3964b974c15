package gameplay

import (
	"math/rand"
	"testing"

	"github.com/decker502/stickcatch/pkg/config"
	"github.com/decker502/stickcatch/pkg/types"
)

func TestRulesetOutcomes(t *testing.T) {
	stick := FallingObject{Kind: types.KindStickSmall}
	rock := FallingObject{Kind: types.KindRock, Hazard: true}

	tests := []struct {
		name      string
		variant   types.Variant
		obj       FallingObject
		wantCatch Outcome
		wantExit  Outcome
	}{
		{"simple stick", types.VariantSimple, stick, OutcomeScore, OutcomeGameOver},
		// 简单版不看危险标记
		{"simple ignores hazard flag", types.VariantSimple, rock, OutcomeScore, OutcomeGameOver},
		{"enhanced stick", types.VariantEnhanced, stick, OutcomeScore, OutcomeRemove},
		{"enhanced hazard", types.VariantEnhanced, rock, OutcomeGameOver, OutcomeGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := NewRuleset(tt.variant)
			if rules.Variant() != tt.variant {
				t.Errorf("Variant() = %v, want %v", rules.Variant(), tt.variant)
			}
			if got := rules.ResolveCatch(tt.obj); got != tt.wantCatch {
				t.Errorf("ResolveCatch = %v, want %v", got, tt.wantCatch)
			}
			if got := rules.ResolveGroundExit(tt.obj); got != tt.wantExit {
				t.Errorf("ResolveGroundExit = %v, want %v", got, tt.wantExit)
			}
		})
	}
}

func TestDifficulty(t *testing.T) {
	d := NewDifficulty(config.VariantConfig{BaseFallSpeed: 100, SpeedIncrement: 50, Milestone: 10})

	speed := d.BaseSpeed()
	for score := 1; score <= 35; score++ {
		next, changed := d.Next(score, speed)
		wantChanged := score%10 == 0
		if changed != wantChanged {
			t.Errorf("score %d: changed = %v, want %v", score, changed, wantChanged)
		}
		speed = next
		if want := 100 + 50*float64(score/10); speed != want {
			t.Errorf("score %d: speed = %v, want %v", score, speed, want)
		}
	}
	if speed != 250 {
		t.Errorf("speed at 35 = %v, want 250", speed)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	tests := []struct {
		name string
		vc   config.VariantConfig
	}{
		{"no milestone", config.VariantConfig{BaseFallSpeed: 200, SpeedIncrement: 50}},
		{"no increment", config.VariantConfig{BaseFallSpeed: 200, Milestone: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDifficulty(tt.vc)
			speed := d.BaseSpeed()
			for score := 0; score <= 30; score++ {
				if d.IsMilestone(score) {
					t.Errorf("score %d should not be a milestone", score)
				}
				speed, _ = d.Next(score, speed)
			}
			if speed != 200 {
				t.Errorf("speed at 30 = %v, want 200", speed)
			}
		})
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePlaying.String() != "Playing" || PhaseGameOver.String() != "GameOver" {
		t.Errorf("unexpected phase names: %s, %s", PhasePlaying, PhaseGameOver)
	}
	if Phase(9).String() != "Unknown" {
		t.Errorf("Phase(9) = %s", Phase(9))
	}
}

func TestSpawnerWeights(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	vc, err := cfg.Variant(types.VariantEnhanced)
	if err != nil {
		t.Fatalf("Variant failed: %v", err)
	}

	s := NewSpawner(rand.New(rand.NewSource(42)), vc.Objects, cfg.Playfield.Width, cfg.Spawn.Margin)

	const n = 11000
	counts := make(map[string]int)
	hazards := 0
	for i := 0; i < n; i++ {
		k := s.PickKind()
		counts[k.Kind]++
		if k.Hazard {
			hazards++
		}
	}

	// 期望：stick1/stick2 各 4000，每种危险物 1000
	for kind, want := range map[string]int{"stick1": 4000, "stick2": 4000, "rock": 1000, "pinecone": 1000, "beehive": 1000} {
		got := counts[kind]
		if got < want*85/100 || got > want*115/100 {
			t.Errorf("%s picked %d times, want about %d", kind, got, want)
		}
	}
	if hazards < 2550 || hazards > 3450 {
		t.Errorf("hazards picked %d times, want about 3000", hazards)
	}
}

func TestSpawnerSimpleKinds(t *testing.T) {
	cfg := config.DefaultGameplayConfig()
	vc, _ := cfg.Variant(types.VariantSimple)
	s := NewSpawner(rand.New(rand.NewSource(7)), vc.Objects, cfg.Playfield.Width, cfg.Spawn.Margin)

	seen := make(map[types.ObjectKind]int)
	for i := 0; i < 1000; i++ {
		seen[s.PickKind().ObjectKind()]++
	}
	if len(seen) != 2 || seen[types.KindStickSmall] == 0 || seen[types.KindStickLarge] == 0 {
		t.Errorf("simple spawner kinds = %v", seen)
	}
}

func TestSpawnerXRange(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(3)), config.DefaultGameplayConfig().Variants["simple"].Objects, 607.5, 50)

	lo, hi := s.XRange()
	if lo != 50 || hi != 557 {
		t.Fatalf("XRange = [%v, %v], want [50, 557]", lo, hi)
	}

	minSeen, maxSeen := hi, lo
	for i := 0; i < 20000; i++ {
		x := s.PickX()
		if x < lo || x > hi {
			t.Fatalf("PickX = %v outside [%v, %v]", x, lo, hi)
		}
		if x != float64(int(x)) {
			t.Fatalf("PickX = %v is not an integer", x)
		}
		if x < minSeen {
			minSeen = x
		}
		if x > maxSeen {
			maxSeen = x
		}
	}
	if minSeen != lo || maxSeen != hi {
		t.Errorf("PickX covered [%v, %v], want both ends of [%v, %v]", minSeen, maxSeen, lo, hi)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	kinds := config.DefaultGameplayConfig().Variants["enhanced"].Objects
	a := NewSpawner(rand.New(rand.NewSource(99)), kinds, 607.5, 50)
	b := NewSpawner(rand.New(rand.NewSource(99)), kinds, 607.5, 50)

	for i := 0; i < 100; i++ {
		if a.PickKind().Kind != b.PickKind().Kind || a.PickX() != b.PickX() {
			t.Fatalf("same seed diverged at pick %d", i)
		}
	}
}
