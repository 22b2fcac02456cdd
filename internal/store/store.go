package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100

	// Fixed width so that text order of analyzed_at is time order.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNotFound is returned when no analysis has the requested id.
var ErrNotFound = errors.New("cv analysis not found")

const schema = `
CREATE TABLE IF NOT EXISTS cv_analysis (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	resume_id        INTEGER,
	full_name        TEXT,
	email            TEXT,
	phone            TEXT,
	skills           TEXT,
	expertise        TEXT,
	job_titles       TEXT,
	experience_years INTEGER,
	education        TEXT,
	summary          TEXT,
	raw_text         TEXT,
	analyzed_at      TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS cv_analysis_analyzed_at ON cv_analysis (analyzed_at);
`

const selectColumns = `id, resume_id, full_name, email, phone, skills, expertise, job_titles,
	experience_years, education, summary, raw_text, analyzed_at, updated_at`

// Store keeps analysis results in a sqlite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens (creating when needed) the sqlite database at path and applies the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	// sqlite allows a single writer at a time.
	db.SetMaxOpenConns(1)

	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Insert stores a freshly analyzed profile together with the text it came from.
func (s *Store) Insert(ctx context.Context, p *cvanalysis.Profile, rawText string, resumeID *int64) (*Record, error) {
	if p == nil {
		return nil, errors.New("profile is required")
	}

	skills, err := marshalColumn(p.Skills)
	if err != nil {
		return nil, fmt.Errorf("encode skills: %w", err)
	}
	titles, err := marshalColumn(p.JobTitles)
	if err != nil {
		return nil, fmt.Errorf("encode job titles: %w", err)
	}
	education, err := marshalColumn(p.Education)
	if err != nil {
		return nil, fmt.Errorf("encode education: %w", err)
	}

	now := s.now().UTC().Format(timeLayout)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO cv_analysis (
			resume_id, full_name, email, phone, skills, expertise, job_titles,
			experience_years, education, summary, raw_text, analyzed_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, resumeID, p.FullName, p.Email, p.Phone, skills, p.Expertise, titles,
		p.ExperienceYears, education, p.Summary, rawText, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert cv analysis: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read inserted id: %w", err)
	}

	s.logger.Debug("cv analysis stored", zap.Int64("id", id))

	return s.Get(ctx, id)
}

func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM cv_analysis WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get cv analysis %d: %w", id, err)
	}

	return rec, nil
}

// List returns analyses newest first. A non-positive limit means 10; the
// limit is capped at 100.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset = max(offset, 0)

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM cv_analysis
		ORDER BY analyzed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cv analyses: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cv analysis: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cv analyses: %w", err)
	}

	return records, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cv_analysis WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cv analysis %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cv analysis %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	s.logger.Debug("cv analysis deleted", zap.Int64("id", id))
	return nil
}

func marshalColumn(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
