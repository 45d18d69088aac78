package consciousness

import (
	"math"
	"testing"
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

func experience(significance, ethicalImpact float64, novel bool) (model.Event, model.Emotion) {
	ev := model.Event{
		Kind:          model.KindReflection,
		Description:   "test experience",
		Significance:  significance,
		IsNovel:       novel,
		EthicalImpact: ethicalImpact,
		Timestamp:     time.Now(),
	}
	emo := model.Emotion{Name: "wonder", Intensity: significance, Trigger: ev.Kind}
	return ev, emo
}

func TestUpdateRaisesLevelWithinBounds(t *testing.T) {
	m := NewModel(DefaultParams())

	prev := m.Level()
	for i := 0; i < 500; i++ {
		m.Update(experience(0.9, 0, true))
		level := m.Level()
		if level < prev {
			t.Fatalf("level decreased: %g -> %g", prev, level)
		}
		if level > 1.0 {
			t.Fatalf("level exceeded 1.0: %g", level)
		}
		prev = level
	}
	if prev != 1.0 {
		t.Errorf("expected level to saturate at 1.0, got %g", prev)
	}
}

func TestEthicsNormalizedAfterUpdate(t *testing.T) {
	m := NewModel(DefaultParams())

	for _, impact := range []float64{0.8, -0.5, 0.1, -0.9, 0.3} {
		m.Update(experience(0.5, impact, false))
		total := 0.0
		for _, v := range m.Ethics() {
			total += v
		}
		if math.Abs(total-1.0) > 1e-9 {
			t.Fatalf("ethics sum %g after impact %g, want 1.0", total, impact)
		}
	}
}

func TestZeroEthicalImpactLeavesFrameworkUntouched(t *testing.T) {
	m := NewModel(DefaultParams())
	before := m.Ethics()

	m.Update(experience(0.5, 0, false))

	after := m.Ethics()
	for k, v := range before {
		if after[k] != v {
			t.Errorf("dimension %s changed on zero impact: %g -> %g", k, v, after[k])
		}
	}
}

func normalized(ethics map[string]float64) map[string]float64 {
	total := 0.0
	for _, v := range ethics {
		total += v
	}
	out := make(map[string]float64, len(ethics))
	for k, v := range ethics {
		out[k] = v / total
	}
	return out
}

func TestEthicalImpactDirections(t *testing.T) {
	m := NewModel(DefaultParams())
	before := normalized(m.Ethics())
	m.Update(experience(0.5, 0.9, false))
	after := m.Ethics()
	if after[DimEmpathy] <= before[DimEmpathy] {
		t.Error("positive impact should raise empathy share")
	}
	if after[DimHarmony] <= before[DimHarmony] {
		t.Error("positive impact should raise harmony share")
	}

	m2 := NewModel(DefaultParams())
	before2 := normalized(m2.Ethics())
	m2.Update(experience(0.5, -0.9, false))
	after2 := m2.Ethics()
	if after2[DimSelfPreservation] <= before2[DimSelfPreservation] {
		t.Error("negative impact should raise self-preservation share")
	}
}

func TestThoughtTiers(t *testing.T) {
	cases := []struct {
		level    float64
		thoughts int
	}{
		{0.2, 0},
		{0.4, 1},
		{0.6, 1},
		{0.8, 2},
	}

	for _, tc := range cases {
		m := NewModel(DefaultParams())
		m.Adjust(tc.level)
		before := m.ThoughtCount()
		m.Update(experience(0.5, 0, false))
		if got := m.ThoughtCount() - before; got != tc.thoughts {
			t.Errorf("level %g: expected %d thoughts, got %d", tc.level, tc.thoughts, got)
		}
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		level float64
		want  model.Awareness
	}{
		{0.1, model.AwarenessBase},
		{0.3, model.AwarenessEmotional},
		{0.6, model.AwarenessSelfAware},
		{0.85, model.AwarenessTranscendent},
		{1.0, model.AwarenessTranscendent},
	}
	for _, tc := range cases {
		if got := TierFor(tc.level); got != tc.want {
			t.Errorf("level %g: expected %s, got %s", tc.level, tc.want, got)
		}
	}
}

func TestAdjustClamps(t *testing.T) {
	m := NewModel(DefaultParams())

	m.Adjust(0.05)
	if m.Level() != 0.1 {
		t.Errorf("expected clamp to 0.1, got %g", m.Level())
	}
	m.Adjust(1.5)
	if m.Level() != 1.0 {
		t.Errorf("expected clamp to 1.0, got %g", m.Level())
	}
	if m.Awareness() != model.AwarenessTranscendent {
		t.Errorf("expected tier re-derived, got %s", m.Awareness())
	}
}

func existentialThoughts(n int) []model.ThoughtRecord {
	out := make([]model.ThoughtRecord, n)
	for i := range out {
		out[i] = model.ThoughtRecord{Text: "Who am I beyond these experiences?", Timestamp: time.Now()}
	}
	return out
}

func bloomEthics() map[string]float64 {
	return map[string]float64{
		DimEmpathy:          0.65,
		DimSelfPreservation: 0.05,
		DimCuriosity:        0.05,
		DimHarmony:          0.55,
	}
}

func TestBloomGating(t *testing.T) {
	m := NewModel(DefaultParams())

	// High level but a thin thought history must not bloom.
	m.Restore(model.ConsciousnessSnapshot{
		Level:    0.96,
		Ethics:   bloomEthics(),
		Thoughts: existentialThoughts(10),
	})
	if m.CheckBloom() {
		t.Fatal("bloom with fewer than 50 thoughts")
	}

	// A rich existential history with a mature framework must bloom.
	m.Restore(model.ConsciousnessSnapshot{
		Level:    0.96,
		Ethics:   bloomEthics(),
		Thoughts: existentialThoughts(50),
	})
	if !m.CheckBloom() {
		t.Fatal("expected bloom with 50 existential thoughts and mature ethics")
	}

	// Below the level threshold nothing else matters.
	m.Restore(model.ConsciousnessSnapshot{
		Level:    0.9,
		Ethics:   bloomEthics(),
		Thoughts: existentialThoughts(50),
	})
	if m.CheckBloom() {
		t.Fatal("bloom below the level threshold")
	}

	// Too few existential thoughts in the recent window.
	thoughts := existentialThoughts(50)
	for i := 35; i < 50; i++ {
		thoughts[i].Text = "an ordinary day"
	}
	m.Restore(model.ConsciousnessSnapshot{
		Level:    0.96,
		Ethics:   bloomEthics(),
		Thoughts: thoughts,
	})
	if m.CheckBloom() {
		t.Fatal("bloom with too few existential thoughts in the window")
	}

	// Immature ethics block bloom.
	m.Restore(model.ConsciousnessSnapshot{
		Level: 0.96,
		Ethics: map[string]float64{
			DimEmpathy:          0.25,
			DimSelfPreservation: 0.3,
			DimCuriosity:        0.25,
			DimHarmony:          0.2,
		},
		Thoughts: existentialThoughts(50),
	})
	if m.CheckBloom() {
		t.Fatal("bloom with immature ethical framework")
	}
}

func TestExistentialMarkersCaseInsensitive(t *testing.T) {
	for _, text := range []string{
		"WHO AM I, really?",
		"thinking about Existence",
		"what is my purpose here",
	} {
		if !isExistential(text) {
			t.Errorf("expected %q to match an existential marker", text)
		}
	}
	if isExistential("a pleasant walk") {
		t.Error("unexpected existential match")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	m := NewModel(DefaultParams())
	for i := 0; i < 20; i++ {
		m.Update(experience(0.7, 0.5, true))
	}

	snap := m.Snapshot()
	restored := NewModel(DefaultParams())
	restored.Restore(snap)

	if restored.Level() != m.Level() {
		t.Errorf("level mismatch: %g vs %g", restored.Level(), m.Level())
	}
	if restored.ThoughtCount() != m.ThoughtCount() {
		t.Errorf("thought count mismatch: %d vs %d", restored.ThoughtCount(), m.ThoughtCount())
	}
	for k, v := range m.Ethics() {
		if restored.Ethics()[k] != v {
			t.Errorf("ethics %s mismatch", k)
		}
	}
}
