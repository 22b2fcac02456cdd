package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
)

const sampleCV = `Jane Doe
jane@example.com
Python developer with 6 years of Docker experience.
Master of Science 2014`

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "history.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func analyze(t *testing.T, text string) *cvanalysis.Profile {
	t.Helper()

	p, err := cvanalysis.Analyze(text)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return p
}

func TestInsertAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	profile := analyze(t, sampleCV)
	resumeID := int64(42)

	rec, err := s.Insert(ctx, profile, sampleCV, &resumeID)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if rec.ID == 0 {
		t.Fatalf("expected generated id")
	}
	if rec.ResumeID == nil || *rec.ResumeID != 42 {
		t.Fatalf("unexpected resume id: %v", rec.ResumeID)
	}
	if rec.RawText != sampleCV {
		t.Fatalf("raw text not preserved")
	}
	if !rec.AnalyzedAt.Equal(fixed) || !rec.UpdatedAt.Equal(fixed) {
		t.Fatalf("unexpected timestamps: %s / %s", rec.AnalyzedAt, rec.UpdatedAt)
	}

	if !reflect.DeepEqual(rec.Profile(), profile) {
		t.Fatalf("profile round trip mismatch:\n%+v\n%+v", rec.Profile(), profile)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("get mismatch:\n%+v\n%+v", got, rec)
	}
}

func TestInsertWithoutOptionalFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Insert(ctx, analyze(t, "nothing useful"), "nothing useful", nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if rec.ResumeID != nil || rec.Email != nil || rec.Phone != nil {
		t.Fatalf("expected nil optional fields, got %v %v %v", rec.ResumeID, rec.Email, rec.Phone)
	}
	if len(rec.Skills) != 0 || rec.Skills == nil {
		t.Fatalf("expected empty, non-nil skills, got %#v", rec.Skills)
	}
	if len(rec.Education) != 1 || rec.Education[0].Degree != cvanalysis.NotSpecified {
		t.Fatalf("expected fallback education, got %+v", rec.Education)
	}

	if _, err := s.Insert(ctx, nil, "", nil); err == nil {
		t.Fatalf("expected error for nil profile")
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		s.now = func() time.Time { return at }
		if _, err := s.Insert(ctx, analyze(t, sampleCV), sampleCV, nil); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	records, err := s.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i-1].AnalyzedAt.Before(records[i].AnalyzedAt) {
			t.Fatalf("records not ordered newest first: %s before %s", records[i-1].AnalyzedAt, records[i].AnalyzedAt)
		}
	}

	page, err := s.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].ID != records[1].ID {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, err = s.List(ctx, 500, -3)
	if err != nil {
		t.Fatalf("list capped: %v", err)
	}
	if len(page) != 3 {
		t.Fatalf("expected all records, got %d", len(page))
	}
}

func TestListOrdersWithinOneSecond(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	offsets := []time.Duration{
		120 * time.Millisecond,
		100 * time.Millisecond,
		0,
		999999999,
		5 * time.Microsecond,
	}

	for i, offset := range offsets {
		at := base.Add(offset)
		s.now = func() time.Time { return at }
		if _, err := s.Insert(ctx, analyze(t, sampleCV), sampleCV, nil); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	records, err := s.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != len(offsets) {
		t.Fatalf("expected %d records, got %d", len(offsets), len(records))
	}

	for i := 1; i < len(records); i++ {
		if !records[i-1].AnalyzedAt.After(records[i].AnalyzedAt) {
			t.Fatalf("records not ordered newest first: %s then %s", records[i-1].AnalyzedAt, records[i].AnalyzedAt)
		}
	}
	if !records[0].AnalyzedAt.Equal(base.Add(999999999)) {
		t.Fatalf("unexpected newest record: %s", records[0].AnalyzedAt)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec, err := s.Insert(ctx, analyze(t, sampleCV), sampleCV, nil)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
