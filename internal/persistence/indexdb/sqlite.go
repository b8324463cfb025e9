// Package indexdb keeps a secondary sqlite index of snapshot metadata and
// served queries. It is a read model for tooling; the compressed JSONL logs
// remain the source of truth.
package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"gridkit.dev/internal/persistence/snapshot"
	"gridkit.dev/internal/transport/ws"
)

type SQLiteIndex struct {
	db *sql.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqQuery reqKind = iota + 1
	reqSnapshot
)

type req struct {
	kind     reqKind
	query    ws.QueryServed
	snapshot snapshotRow
}

type snapshotRow struct {
	WorldID    string
	Path       string
	Seed       int64
	Height     int
	Chunks     int
	RecordedAt string
}

func Open(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		// High buffer: bursty query traffic must not stall the serving path.
		ch: make(chan req, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads; NORMAL is a decent
	// durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			path TEXT PRIMARY KEY,
			world_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			height INTEGER NOT NULL,
			chunks INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_world ON snapshots(world_id, recorded_at);`,
		`CREATE TABLE IF NOT EXISTS queries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			query_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			count INTEGER NOT NULL,
			truncated INTEGER NOT NULL,
			err_code TEXT,
			took_ms INTEGER NOT NULL,
			at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_queries_session ON queries(session_id, at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	if _, err := db.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// RecordQuery enqueues one served-query row. Drops when the indexer falls
// behind; the querylog JSONL keeps the full record.
func (s *SQLiteIndex) RecordQuery(rec ws.QueryServed) {
	if s == nil || s.closed.Load() {
		return
	}
	select {
	case s.ch <- req{kind: reqQuery, query: rec}:
	default:
	}
}

func (s *SQLiteIndex) RecordSnapshot(path string, snap snapshot.SnapshotV1) {
	if s == nil || s.closed.Load() {
		return
	}
	r := snapshotRow{
		WorldID:    snap.Header.WorldID,
		Path:       path,
		Seed:       snap.Gen.Seed,
		Height:     snap.Gen.Height,
		Chunks:     len(snap.Chunks),
		RecordedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	select {
	case s.ch <- req{kind: reqSnapshot, snapshot: r}:
	default:
	}
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertQuery, _ := s.db.Prepare(`INSERT INTO queries(session_id,query_id,mode,count,truncated,err_code,took_ms,at) VALUES(?,?,?,?,?,?,?,?)`)
	insertSnapshot, _ := s.db.Prepare(`INSERT OR REPLACE INTO snapshots(path,world_id,seed,height,chunks,recorded_at) VALUES(?,?,?,?,?,?)`)
	defer func() {
		if insertQuery != nil {
			_ = insertQuery.Close()
		}
		if insertSnapshot != nil {
			_ = insertSnapshot.Close()
		}
	}()

	var tx *sql.Tx
	opCount := 0
	lastCommit := time.Now()
	const commitEvery = 500
	const commitMaxWait = 2 * time.Second

	begin := func() bool {
		if tx != nil {
			return true
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return false
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
		return true
	}
	commit := func() {
		if tx == nil {
			return
		}
		_ = tx.Commit()
		tx = nil
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case r, ok := <-s.ch:
			if !ok {
				commit()
				return
			}
			if !begin() {
				continue
			}
			switch r.kind {
			case reqQuery:
				q := r.query
				truncated := 0
				if q.Truncated {
					truncated = 1
				}
				_, _ = tx.Stmt(insertQuery).Exec(q.SessionID, q.QueryID, q.Mode, q.Count, truncated, q.ErrCode, q.TookMs, q.At)
			case reqSnapshot:
				sr := r.snapshot
				_, _ = tx.Stmt(insertSnapshot).Exec(sr.Path, sr.WorldID, sr.Seed, sr.Height, sr.Chunks, sr.RecordedAt)
			}
			opCount++
			if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait {
				commit()
			}
		case <-ticker.C:
			if tx != nil && time.Since(lastCommit) >= commitMaxWait {
				commit()
			}
		}
	}
}

// QueryCount reports the number of indexed query rows, for tooling and
// tests.
func (s *SQLiteIndex) QueryCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM queries`).Scan(&n)
	return n, err
}

// LatestSnapshot returns the most recently recorded snapshot path for a
// world, or "" when none is indexed.
func (s *SQLiteIndex) LatestSnapshot(ctx context.Context, worldID string) (string, error) {
	var path string
	err := s.db.QueryRowContext(ctx,
		`SELECT path FROM snapshots WHERE world_id = ? ORDER BY recorded_at DESC LIMIT 1`, worldID).Scan(&path)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return path, err
}
