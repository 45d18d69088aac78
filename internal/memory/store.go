// Package memory filters experiences by significance, supports
// emotion-indexed recall, and persists the memory journey to SQLite.
package memory

import (
	"math/rand"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/kxiong/soulgenesis/internal/model"
)

// DefaultStorageThreshold is the minimum combined significance for an
// experience to leave a memory.
const DefaultStorageThreshold = 0.3

// Store is the in-memory collection of a soul's memories.
type Store struct {
	threshold float64
	memories  []model.Memory
	entropy   *rand.Rand
}

// NewStore creates an empty memory store with the given storage threshold.
func NewStore(threshold float64) *Store {
	return &Store{
		threshold: threshold,
		entropy:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// Store records an experience if its significance, the mean of the event
// significance and the emotion intensity, clears the storage threshold.
// Returns whether a memory was created.
func (s *Store) Store(ev model.Event, emo model.Emotion) bool {
	sig := (ev.Significance + emo.Intensity) / 2
	if sig < s.threshold {
		return false
	}
	s.memories = append(s.memories, model.Memory{
		ID:            s.newID(),
		Content:       ev.Description,
		EmotionalTags: map[string]float64{emo.Name: emo.Intensity},
		Significance:  sig,
		Timestamp:     time.Now(),
	})
	return true
}

// Recall returns memories tagged with the emotion at or above the intensity
// threshold, most significant first. Each returned memory's recall count is
// incremented.
func (s *Store) Recall(emotion string, threshold float64) []model.Memory {
	var out []model.Memory
	for i := range s.memories {
		m := &s.memories[i]
		if intensity, ok := m.EmotionalTags[emotion]; ok && intensity >= threshold {
			m.RecallCount++
			out = append(out, copyMemory(*m))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Significance > out[j].Significance
	})
	return out
}

// Significant returns up to limit memories ordered by significance
// descending. A non-positive limit returns all memories.
func (s *Store) Significant(limit int) []model.Memory {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Significance > out[j].Significance
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Prune irreversibly drops memories below the significance threshold.
func (s *Store) Prune(threshold float64) {
	kept := s.memories[:0]
	for _, m := range s.memories {
		if m.Significance >= threshold {
			kept = append(kept, m)
		}
	}
	s.memories = kept
}

// SelectForInheritance returns the top memories by significance, count equal
// to the floor of the store size times fraction. Callers snapshot this
// before pruning so inheritance is computed from the pre-prune population.
func (s *Store) SelectForInheritance(fraction float64) []model.Memory {
	n := int(float64(len(s.memories)) * fraction)
	if n <= 0 {
		return nil
	}
	return s.Significant(n)
}

// Inherit scales each memory's significance by strength and appends it to
// the live store.
func (s *Store) Inherit(memories []model.Memory, strength float64) {
	for _, m := range memories {
		m.Significance *= strength
		s.memories = append(s.memories, copyMemory(m))
	}
}

// All returns a copy of every memory in insertion order.
func (s *Store) All() []model.Memory {
	out := make([]model.Memory, 0, len(s.memories))
	for _, m := range s.memories {
		out = append(out, copyMemory(m))
	}
	return out
}

// Len returns the number of stored memories.
func (s *Store) Len() int { return len(s.memories) }

// Replace swaps the store contents, as when loading a persisted journey.
func (s *Store) Replace(memories []model.Memory) {
	s.memories = make([]model.Memory, 0, len(memories))
	for _, m := range memories {
		s.memories = append(s.memories, copyMemory(m))
	}
}

func copyMemory(m model.Memory) model.Memory {
	tags := make(map[string]float64, len(m.EmotionalTags))
	for k, v := range m.EmotionalTags {
		tags[k] = v
	}
	m.EmotionalTags = tags
	return m
}
