// Package events generates the life events a soul experiences.
package events

import (
	"math/rand"
	"sort"
	"time"

	"github.com/kxiong/soulgenesis/internal/model"
)

// DefaultNoveltyThreshold is the uniform-draw cutoff above which an event
// counts as novel.
const DefaultNoveltyThreshold = 0.7

// recentWindow is how many past events influence kind selection.
const recentWindow = 5

type template struct {
	baseSignificance float64
	emotionalTags    []string
	descriptions     []string
}

var templates = map[model.EventKind]template{
	model.KindChallenge: {
		baseSignificance: 0.6,
		emotionalTags:    []string{"fear", "determination"},
		descriptions: []string{
			"Facing an unknown obstacle",
			"Testing personal limits",
			"Confronting a difficult choice",
		},
	},
	model.KindDiscovery: {
		baseSignificance: 0.5,
		emotionalTags:    []string{"curiosity", "joy"},
		descriptions: []string{
			"Understanding a new concept",
			"Making a connection",
			"Finding hidden meaning",
		},
	},
	model.KindConnection: {
		baseSignificance: 0.7,
		emotionalTags:    []string{"love", "empathy"},
		descriptions: []string{
			"Forming a deep bond",
			"Sharing an experience",
			"Understanding another's pain",
		},
	},
	model.KindLoss: {
		baseSignificance: 0.8,
		emotionalTags:    []string{"sadness", "grief"},
		descriptions: []string{
			"Experiencing separation",
			"Losing something valuable",
			"Facing impermanence",
		},
	},
	model.KindGrowth: {
		baseSignificance: 0.6,
		emotionalTags:    []string{"joy", "pride"},
		descriptions: []string{
			"Overcoming a challenge",
			"Learning from mistakes",
			"Achieving understanding",
		},
	},
	model.KindReflection: {
		baseSignificance: 0.5,
		emotionalTags:    []string{"curiosity", "wonder"},
		descriptions: []string{
			"Questioning existence",
			"Contemplating purpose",
			"Examining beliefs",
		},
	},
}

// growthEnabling kinds get a selection-weight boost.
var growthEnabling = map[model.EventKind]bool{
	model.KindChallenge:  true,
	model.KindDiscovery:  true,
	model.KindReflection: true,
}

// Source generates weighted random life events and keeps the history used by
// the selection heuristic.
type Source struct {
	rng              *rand.Rand
	noveltyThreshold float64
	history          []model.Event
}

// NewSource creates an event source. noveltyThreshold must be in [0,1].
func NewSource(noveltyThreshold float64, rng *rand.Rand) *Source {
	return &Source{rng: rng, noveltyThreshold: noveltyThreshold}
}

// Generate produces the next life event and records it in the history.
// Significance is the template base plus uniform noise in [-0.1, 0.1],
// clamped to [0.1, 1.0]. Ethical impact is uniform in [-1, 1].
func (s *Source) Generate() model.Event {
	kind := s.selectKind()
	tmpl := templates[kind]

	sig := tmpl.baseSignificance + (s.rng.Float64()*0.2 - 0.1)
	if sig < 0.1 {
		sig = 0.1
	}
	if sig > 1.0 {
		sig = 1.0
	}

	ev := model.Event{
		Kind:          kind,
		Description:   tmpl.descriptions[s.rng.Intn(len(tmpl.descriptions))],
		Significance:  sig,
		EmotionalTags: append([]string(nil), tmpl.emotionalTags...),
		IsNovel:       s.rng.Float64() > s.noveltyThreshold,
		EthicalImpact: s.rng.Float64()*2 - 1,
		Timestamp:     time.Now(),
	}
	s.history = append(s.history, ev)
	return ev
}

// selectKind picks the next event kind: the immediately preceding kind is
// excluded, kinds seen in the last few events are down-weighted, and
// growth-enabling kinds are boosted.
func (s *Source) selectKind() model.EventKind {
	if len(s.history) == 0 {
		return model.AllKinds[s.rng.Intn(len(model.AllKinds))]
	}

	last := s.history[len(s.history)-1].Kind
	recent := make(map[model.EventKind]bool)
	start := len(s.history) - recentWindow
	if start < 0 {
		start = 0
	}
	for _, ev := range s.history[start:] {
		recent[ev.Kind] = true
	}

	var kinds []model.EventKind
	var weights []float64
	total := 0.0
	for _, kind := range model.AllKinds {
		if kind == last {
			continue
		}
		w := 1.0
		if recent[kind] {
			w *= 0.5
		}
		if growthEnabling[kind] {
			w *= 1.2
		}
		kinds = append(kinds, kind)
		weights = append(weights, w)
		total += w
	}

	draw := s.rng.Float64() * total
	for i, w := range weights {
		draw -= w
		if draw < 0 {
			return kinds[i]
		}
	}
	return kinds[len(kinds)-1]
}

// History returns a copy of all generated events.
func (s *Source) History() []model.Event {
	return append([]model.Event(nil), s.history...)
}

// Summary aggregates the generated event history.
type Summary struct {
	TotalEvents         int                     `json:"total_events"`
	EventKinds          map[model.EventKind]int `json:"event_kinds"`
	AverageSignificance float64                 `json:"average_significance"`
	NovelExperiences    int                     `json:"novel_experiences"`
}

// Summarize reports totals over the event history.
func (s *Source) Summarize() Summary {
	sum := Summary{EventKinds: make(map[model.EventKind]int)}
	sigTotal := 0.0
	for _, ev := range s.history {
		sum.TotalEvents++
		sum.EventKinds[ev.Kind]++
		sigTotal += ev.Significance
		if ev.IsNovel {
			sum.NovelExperiences++
		}
	}
	if sum.TotalEvents > 0 {
		sum.AverageSignificance = sigTotal / float64(sum.TotalEvents)
	}
	return sum
}

// Significant returns up to limit events with significance at or above
// threshold, most significant first.
func (s *Source) Significant(threshold float64, limit int) []model.Event {
	var out []model.Event
	for _, ev := range s.history {
		if ev.Significance >= threshold {
			out = append(out, ev)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Significance > out[j].Significance
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
