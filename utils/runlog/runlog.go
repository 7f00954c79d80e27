// Package runlog keeps a local history of analysis submissions so a user can
// see what was run against which dataset and how it ended. The wizard core
// stays purely in-memory; persistence lives here, on the host side.
package runlog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	analysis    TEXT NOT NULL,
	dataset     TEXT NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER,
	succeeded   INTEGER,
	error       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at DESC);
`

// Run is one recorded submission attempt.
type Run struct {
	ID         string
	Analysis   string
	Dataset    string
	StartedAt  time.Time
	FinishedAt time.Time
	Finished   bool
	Succeeded  bool
	Error      string
}

// Log records runs in a SQLite database.
type Log struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(l *Log) {
		if log != nil {
			l.log = log
		}
	}
}

// Open creates or opens the run log database at path.
func Open(path string, opts ...Option) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize run log schema: %w", err)
	}
	l := &Log{db: db, log: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Close releases the database.
func (l *Log) Close() error {
	return l.db.Close()
}

// Begin records the start of a submission and returns its run id.
func (l *Log) Begin(analysisID, datasetFingerprint string) (string, error) {
	id := uuid.NewString()
	_, err := l.db.Exec(
		`INSERT INTO runs (id, analysis, dataset, started_at) VALUES (?, ?, ?, ?)`,
		id, analysisID, datasetFingerprint, l.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("record run start: %w", err)
	}
	l.log.Debug("run started", zap.String("run_id", id), zap.String("analysis", analysisID))
	return id, nil
}

// Finish records the outcome of a previously begun run.
func (l *Log) Finish(id string, runErr error) error {
	msg := ""
	succeeded := 1
	if runErr != nil {
		msg = runErr.Error()
		succeeded = 0
	}
	res, err := l.db.Exec(
		`UPDATE runs SET finished_at = ?, succeeded = ?, error = ? WHERE id = ?`,
		l.now().UnixNano(), succeeded, msg, id,
	)
	if err != nil {
		return fmt.Errorf("record run outcome: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record run outcome: %w", err)
	}
	if affected == 0 {
		return UnknownRunError{ID: id}
	}
	l.log.Debug("run finished", zap.String("run_id", id), zap.Bool("succeeded", runErr == nil))
	return nil
}

// Recent returns up to limit runs, newest first.
func (l *Log) Recent(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id, analysis, dataset, started_at, finished_at, succeeded, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			startedAt  int64
			finishedAt sql.NullInt64
			succeeded  sql.NullInt64
		)
		if err := rows.Scan(&run.ID, &run.Analysis, &run.Dataset, &startedAt, &finishedAt, &succeeded, &run.Error); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, startedAt)
		if finishedAt.Valid {
			run.FinishedAt = time.Unix(0, finishedAt.Int64)
			run.Finished = true
		}
		run.Succeeded = succeeded.Valid && succeeded.Int64 == 1
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Recorder glues a Log to one analysis session as a wizard observer: it
// tracks the id of the run in flight so start/settle callbacks stay a single
// insert and update each. The fingerprint is resolved per attempt so a
// reloaded dataset is recorded under its current identity.
type Recorder struct {
	runlog      *Log
	analysisID  string
	fingerprint func() string
	log         *zap.Logger

	mu      sync.Mutex
	current string
}

// NewRecorder creates a Recorder for one analysis session. fingerprint may be
// nil when no dataset identity should be recorded.
func NewRecorder(l *Log, analysisID string, fingerprint func() string) *Recorder {
	return &Recorder{
		runlog:      l,
		analysisID:  analysisID,
		fingerprint: fingerprint,
		log:         l.log,
	}
}

// StepChanged is part of the wizard observer contract; navigation is not recorded.
func (r *Recorder) StepChanged(wizard.State) {}

// SubmissionStarted records the beginning of an attempt.
func (r *Recorder) SubmissionStarted(wizard.State) {
	fp := ""
	if r.fingerprint != nil {
		fp = r.fingerprint()
	}
	id, err := r.runlog.Begin(r.analysisID, fp)
	if err != nil {
		r.log.Warn("run log unavailable", zap.Error(err))
		return
	}
	r.mu.Lock()
	r.current = id
	r.mu.Unlock()
}

// SubmissionSettled records the outcome of the attempt in flight.
func (r *Recorder) SubmissionSettled(_ wizard.State, runErr error) {
	r.mu.Lock()
	id := r.current
	r.current = ""
	r.mu.Unlock()
	if id == "" {
		return
	}
	if err := r.runlog.Finish(id, runErr); err != nil && !errors.As(err, new(UnknownRunError)) {
		r.log.Warn("run log unavailable", zap.Error(err))
	}
}
