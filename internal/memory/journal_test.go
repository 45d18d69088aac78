package memory

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	dir := t.TempDir()
	j, err := OpenJournal(filepath.Join(dir, "soul.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	in := []model.Memory{
		{
			ID:            "01A",
			Content:       "Forming a deep bond",
			EmotionalTags: map[string]float64{"love": 0.8},
			Significance:  0.75,
			Timestamp:     time.Now().UTC(),
			RecallCount:   3,
		},
		{
			ID:            "01B",
			Content:       "Losing something valuable",
			EmotionalTags: map[string]float64{"sadness": 0.9},
			Significance:  0.85,
			Timestamp:     time.Now().UTC(),
			RecallCount:   0,
		},
	}

	if err := j.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := j.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d memories, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].ID != in[i].ID {
			t.Errorf("memory %d: id %q, want %q (order must be preserved)", i, out[i].ID, in[i].ID)
		}
		if out[i].Content != in[i].Content {
			t.Errorf("memory %d: content mismatch", i)
		}
		if out[i].Significance != in[i].Significance {
			t.Errorf("memory %d: significance %g, want %g", i, out[i].Significance, in[i].Significance)
		}
		if out[i].RecallCount != in[i].RecallCount {
			t.Errorf("memory %d: recall count %d, want %d", i, out[i].RecallCount, in[i].RecallCount)
		}
		for name, intensity := range in[i].EmotionalTags {
			if out[i].EmotionalTags[name] != intensity {
				t.Errorf("memory %d: tag %s mismatch", i, name)
			}
		}
	}
}

func TestSaveReplacesPriorContents(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	j.Save(ctx, []model.Memory{{ID: "old", Content: "x", EmotionalTags: map[string]float64{}}})
	j.Save(ctx, []model.Memory{{ID: "new", Content: "y", EmotionalTags: map[string]float64{}}})

	out, err := j.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].ID != "new" {
		t.Errorf("expected only the latest save, got %+v", out)
	}
}

func TestLoadMissingJournalIsEmpty(t *testing.T) {
	j := newTestJournal(t)

	out, err := j.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty journal, got %d memories", len(out))
	}
	if j.Warning != "" {
		t.Errorf("unexpected warning for a fresh journal: %s", j.Warning)
	}
}

func TestCorruptJournalFallsBackEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "soul.db")
	if err := os.WriteFile(path, []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer j.Close()

	if j.Warning == "" {
		t.Error("expected a warning for the corrupt journal")
	}
	out, err := j.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty store after corruption, got %d", len(out))
	}

	// The corrupt file is sidelined, not destroyed.
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected sidelined corrupt file: %v", err)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	j := newTestJournal(t)

	// No soul saved yet.
	p, err := j.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile before first save")
	}

	in := model.SoulProfile{
		SoulID: "01SOUL",
		Traits: []model.Trait{
			{Name: "empathy", Value: 0.42, EvolutionRate: 0.05, Description: "d"},
		},
		Consciousness: model.ConsciousnessSnapshot{
			Level:          0.55,
			ActiveThoughts: []string{"These feelings seem meaningful..."},
			Ethics:         map[string]float64{"empathy": 0.3, "harmony": 0.2},
			Thoughts: []model.ThoughtRecord{
				{Text: "This experience affects me...", Timestamp: time.Now().UTC()},
			},
		},
		Cycles: 7,
	}
	if err := j.SaveProfile(ctx, in); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	p, err = j.LoadProfile(ctx)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if p.SoulID != in.SoulID || p.Cycles != in.Cycles {
		t.Errorf("identity mismatch: %+v", p)
	}
	if len(p.Traits) != 1 || p.Traits[0].Value != 0.42 {
		t.Errorf("traits mismatch: %+v", p.Traits)
	}
	if p.Consciousness.Level != 0.55 {
		t.Errorf("consciousness level mismatch: %g", p.Consciousness.Level)
	}
	if len(p.Consciousness.Thoughts) != 1 {
		t.Errorf("thought history mismatch: %+v", p.Consciousness.Thoughts)
	}

	// Upsert keeps a single row.
	in.Cycles = 8
	if err := j.SaveProfile(ctx, in); err != nil {
		t.Fatalf("second save: %v", err)
	}
	p, _ = j.LoadProfile(ctx)
	if p.Cycles != 8 {
		t.Errorf("expected updated cycles 8, got %d", p.Cycles)
	}
}

func TestJournalStats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "soul.db")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer j.Close()

	j.Save(ctx, []model.Memory{
		{ID: "a", Content: "x", EmotionalTags: map[string]float64{"joy": 0.5}, Significance: 0.4, RecallCount: 2},
		{ID: "b", Content: "y", EmotionalTags: map[string]float64{"joy": 0.7}, Significance: 0.8, RecallCount: 1},
	})
	j.SaveProfile(ctx, model.SoulProfile{SoulID: "01SOUL", Cycles: 3})

	st, err := j.JournalStats(ctx, path)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalMemories != 2 {
		t.Errorf("expected 2 memories, got %d", st.TotalMemories)
	}
	if st.TotalRecalls != 3 {
		t.Errorf("expected 3 recalls, got %d", st.TotalRecalls)
	}
	if st.Emotions["joy"] != 2 {
		t.Errorf("expected joy count 2, got %d", st.Emotions["joy"])
	}
	if math.Abs(st.AverageSignificance-0.6) > 1e-9 {
		t.Errorf("expected average 0.6, got %g", st.AverageSignificance)
	}
	if st.SoulID != "01SOUL" || st.Cycles != 3 {
		t.Errorf("profile stats mismatch: %+v", st)
	}
}
