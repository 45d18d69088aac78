package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kxiong/soulgenesis/internal/model"
)

// Journal persists the memory journey and soul profile to SQLite.
//
// Warning is set when an existing journal file was unreadable: the corrupt
// file is sidelined and the journal starts fresh. That is a diagnostic, not
// a fatal error.
type Journal struct {
	db      *sql.DB
	Warning string
}

// OpenJournal opens or creates a journal at the given path. A corrupt
// existing file is renamed aside and replaced with an empty journal.
func OpenJournal(path string) (*Journal, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	j := &Journal{}
	db, err := openAndMigrate(path)
	if err != nil {
		// Unreadable journal: sideline it and start fresh.
		sidelined := path + ".corrupt"
		if renameErr := os.Rename(path, sidelined); renameErr != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		db, err = openAndMigrate(path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		j.Warning = fmt.Sprintf("journal %s was unreadable, starting fresh (saved as %s)", path, sidelined)
	}
	j.db = db
	return j, nil
}

func openAndMigrate(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id             TEXT PRIMARY KEY,
		seq            INTEGER NOT NULL,
		content        TEXT NOT NULL,
		emotional_tags TEXT NOT NULL,
		significance   REAL NOT NULL,
		timestamp      TEXT NOT NULL,
		recall_count   INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_memories_seq ON memories(seq);

	CREATE TABLE IF NOT EXISTS soul (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		soul_id       TEXT NOT NULL,
		traits        TEXT NOT NULL,
		consciousness TEXT NOT NULL,
		cycles        INTEGER NOT NULL DEFAULT 0,
		updated_at    TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Save replaces the persisted memory collection with the given ordered set.
func (j *Journal) Save(ctx context.Context, memories []model.Memory) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memories`); err != nil {
		return fmt.Errorf("clear memories: %w", err)
	}

	for seq, m := range memories {
		tags, err := json.Marshal(m.EmotionalTags)
		if err != nil {
			return fmt.Errorf("encode tags: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO memories (id, seq, content, emotional_tags, significance, timestamp, recall_count)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, seq, m.Content, string(tags), m.Significance,
			m.Timestamp.UTC().Format(time.RFC3339Nano), m.RecallCount)
		if err != nil {
			return fmt.Errorf("insert memory: %w", err)
		}
	}

	return tx.Commit()
}

// Load returns the persisted memory collection in saved order. An empty or
// missing table yields an empty slice.
func (j *Journal) Load(ctx context.Context) ([]model.Memory, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, content, emotional_tags, significance, timestamp, recall_count
		 FROM memories ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load memories: %w", err)
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		var m model.Memory
		var tags, ts string
		if err := rows.Scan(&m.ID, &m.Content, &tags, &m.Significance, &ts, &m.RecallCount); err != nil {
			return nil, fmt.Errorf("scan memory: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &m.EmotionalTags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		m.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// SaveProfile upserts the single soul profile row.
func (j *Journal) SaveProfile(ctx context.Context, p model.SoulProfile) error {
	traits, err := json.Marshal(p.Traits)
	if err != nil {
		return fmt.Errorf("encode traits: %w", err)
	}
	cons, err := json.Marshal(p.Consciousness)
	if err != nil {
		return fmt.Errorf("encode consciousness: %w", err)
	}

	_, err = j.db.ExecContext(ctx,
		`INSERT INTO soul (id, soul_id, traits, consciousness, cycles, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   soul_id = excluded.soul_id,
		   traits = excluded.traits,
		   consciousness = excluded.consciousness,
		   cycles = excluded.cycles,
		   updated_at = excluded.updated_at`,
		p.SoulID, string(traits), string(cons), p.Cycles,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// LoadProfile returns the persisted soul profile, or nil when no soul has
// been saved yet.
func (j *Journal) LoadProfile(ctx context.Context) (*model.SoulProfile, error) {
	var p model.SoulProfile
	var traits, cons string
	err := j.db.QueryRowContext(ctx,
		`SELECT soul_id, traits, consciousness, cycles FROM soul WHERE id = 1`).
		Scan(&p.SoulID, &traits, &cons, &p.Cycles)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if err := json.Unmarshal([]byte(traits), &p.Traits); err != nil {
		return nil, fmt.Errorf("decode traits: %w", err)
	}
	if err := json.Unmarshal([]byte(cons), &p.Consciousness); err != nil {
		return nil, fmt.Errorf("decode consciousness: %w", err)
	}
	return &p, nil
}

// Stats holds journal statistics.
type Stats struct {
	Path                string         `json:"path"`
	SizeBytes           int64          `json:"size_bytes"`
	TotalMemories       int            `json:"total_memories"`
	AverageSignificance float64        `json:"average_significance"`
	TotalRecalls        int            `json:"total_recalls"`
	Emotions            map[string]int `json:"emotions"`
	SoulID              string         `json:"soul_id,omitempty"`
	Cycles              int            `json:"cycles,omitempty"`
}

// JournalStats reports aggregate statistics over the persisted journey.
func (j *Journal) JournalStats(ctx context.Context, path string) (*Stats, error) {
	st := &Stats{Path: path, Emotions: make(map[string]int)}

	if info, err := os.Stat(path); err == nil {
		st.SizeBytes = info.Size()
	}

	memories, err := j.Load(ctx)
	if err != nil {
		return nil, err
	}
	sigTotal := 0.0
	for _, m := range memories {
		st.TotalMemories++
		st.TotalRecalls += m.RecallCount
		sigTotal += m.Significance
		for name := range m.EmotionalTags {
			st.Emotions[name]++
		}
	}
	if st.TotalMemories > 0 {
		st.AverageSignificance = sigTotal / float64(st.TotalMemories)
	}

	if profile, err := j.LoadProfile(ctx); err == nil && profile != nil {
		st.SoulID = profile.SoulID
		st.Cycles = profile.Cycles
	}

	return st, nil
}

// Close closes the journal.
func (j *Journal) Close() error {
	return j.db.Close()
}
