package emotion

import (
	"testing"
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

func event(kind model.EventKind, significance float64) model.Event {
	return model.Event{
		Kind:         kind,
		Description:  "test event",
		Significance: significance,
		Timestamp:    time.Now(),
	}
}

func TestProcessMapping(t *testing.T) {
	cases := []struct {
		kind model.EventKind
		want string
	}{
		{model.KindChallenge, "fear"},
		{model.KindDiscovery, "curiosity"},
		{model.KindConnection, "love"},
		{model.KindLoss, "sadness"},
		{model.KindGrowth, "joy"},
		{model.KindReflection, "wonder"},
		{model.EventKind("unmapped"), "wonder"},
	}

	for _, tc := range cases {
		e := NewEngine()
		rec := e.Process(event(tc.kind, 0.5))
		if rec.Name != tc.want {
			t.Errorf("kind %q: expected emotion %q, got %q", tc.kind, tc.want, rec.Name)
		}
		if rec.Trigger != tc.kind {
			t.Errorf("kind %q: trigger not recorded", tc.kind)
		}
	}
}

func TestProcessIntensityCapped(t *testing.T) {
	e := NewEngine()
	rec := e.Process(event(model.KindLoss, 1.5))
	if rec.Intensity != 1.0 {
		t.Errorf("expected intensity capped at 1.0, got %g", rec.Intensity)
	}
}

func TestProcessOverwritesCurrent(t *testing.T) {
	e := NewEngine()
	e.Process(event(model.KindLoss, 0.8))
	e.Process(event(model.KindLoss, 0.4))

	if got := e.State()["sadness"]; got != 0.4 {
		t.Errorf("expected latest record to win, got intensity %g", got)
	}
	if len(e.History()) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(e.History()))
	}
}

func TestDecayStrictlyDecreasesThenDrops(t *testing.T) {
	e := NewEngine()
	e.Process(event(model.KindLoss, 0.5))

	prev := 0.5
	for i := 0; i < 100; i++ {
		e.Decay()
		state := e.State()
		intensity, ok := state["sadness"]
		if !ok {
			// Dropped below the floor; must be absent from Dominant too.
			if name, val := e.Dominant(); name != Neutral || val != 0.0 {
				t.Fatalf("expected neutral after drop, got %s/%g", name, val)
			}
			if len(e.History()) != 1 {
				t.Fatalf("decay must not touch history, got %d entries", len(e.History()))
			}
			return
		}
		if intensity >= prev {
			t.Fatalf("decay did not decrease intensity: %g -> %g", prev, intensity)
		}
		prev = intensity
	}
	t.Fatal("emotion never dropped below persistence floor")
}

func TestDominantNeutralWhenEmpty(t *testing.T) {
	e := NewEngine()
	name, intensity := e.Dominant()
	if name != Neutral || intensity != 0.0 {
		t.Errorf("expected (%s, 0.0), got (%s, %g)", Neutral, name, intensity)
	}
}

func TestDominantTieBreakFirstSeen(t *testing.T) {
	e := NewEngine()
	e.Process(event(model.KindLoss, 0.6))   // sadness
	e.Process(event(model.KindGrowth, 0.6)) // joy, same intensity

	name, intensity := e.Dominant()
	if name != "sadness" || intensity != 0.6 {
		t.Errorf("expected first-seen sadness to win tie, got %s/%g", name, intensity)
	}
}

func TestDominantPicksMaximum(t *testing.T) {
	e := NewEngine()
	e.Process(event(model.KindLoss, 0.3))
	e.Process(event(model.KindGrowth, 0.9))

	if name, _ := e.Dominant(); name != "joy" {
		t.Errorf("expected joy, got %s", name)
	}
}

func TestReset(t *testing.T) {
	e := NewEngine()
	e.Process(event(model.KindLoss, 0.8))
	e.Reset()

	if len(e.State()) != 0 {
		t.Error("expected empty state after reset")
	}
	if len(e.History()) != 0 {
		t.Error("expected empty history after reset")
	}
	if name, _ := e.Dominant(); name != Neutral {
		t.Errorf("expected neutral after reset, got %s", name)
	}
}
