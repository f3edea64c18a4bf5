package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

func TestBuildSubmissionWhereEmpty(t *testing.T) {
	where, args := buildSubmissionWhere(models.SubmissionFilter{Result: "all"})
	if where != "" || len(args) != 0 {
		t.Fatalf("expected no clause, got %q %v", where, args)
	}
}

func TestBuildSubmissionWhereSearchSharesOneArgument(t *testing.T) {
	where, args := buildSubmissionWhere(models.SubmissionFilter{
		Result:  "failure",
		Country: "India",
		Search:  "50%_off",
	})

	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != "failure" || args[1] != "India" || args[2] != `%50\%\_off%` {
		t.Fatalf("unexpected args %v", args)
	}
	if !strings.Contains(where, "s.result = $1") || !strings.Contains(where, "c.name = $2") {
		t.Fatalf("unexpected where %q", where)
	}
	if strings.Count(where, "ILIKE $3") != 7 {
		t.Fatalf("expected search across 7 columns with $3, got %q", where)
	}
	for _, col := range []string{"w.name", "c.name", "c.code", "c.phone_code", "p.name", "p.code", "s.note"} {
		if !strings.Contains(where, col+" ILIKE $3") {
			t.Errorf("search does not cover %s: %q", col, where)
		}
	}
	if strings.Contains(where, "w.url") {
		t.Errorf("search must not match website urls: %q", where)
	}
}

func TestSubmissionListOrdersFailuresFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "website_id", "country_id", "project_id", "failure_reason_id",
		"result", "note", "ip_address", "created_at",
		"w_name", "w_url", "w_status",
		"c_name", "c_code", "c_phone",
		"p_name", "p_code",
		"fr_name", "fr_category",
	}
	rows := sqlmock.NewRows(cols).
		AddRow("s1", "w1", "c1", "p1", nil, "failure", nil, "1.2.3.4", now,
			"Relay", "https://relay.example", "active", "India", "in", "+91", "Telegram", "tg", nil, nil).
		AddRow("s2", nil, nil, nil, nil, "success", "worked", "1.2.3.4", now.Add(-time.Hour),
			nil, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.result ASC, s.created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(20, 20).
		WillReturnRows(rows)

	repo := NewSubmissionRepository(db)
	got, err := repo.List(context.Background(), interfaces.SubmissionQuery{Limit: 20, Offset: 20})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Website == nil || got[0].Website.Name != "Relay" || got[0].Country.PhoneCode != "+91" {
		t.Fatalf("expected joined dimensions on first row, got %+v", got[0])
	}
	if got[1].Website != nil || got[1].WebsiteID != nil {
		t.Fatalf("expected nil dimension for orphaned row, got %+v", got[1])
	}
	if got[1].Note == nil || *got[1].Note != "worked" {
		t.Fatalf("expected note, got %v", got[1].Note)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSubmissionCountsUsesFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE w.name = $1")).
		WithArgs("Relay").
		WillReturnRows(sqlmock.NewRows([]string{"total", "failure", "success"}).AddRow(45, 30, 15))

	counts, err := NewSubmissionRepository(db).Counts(context.Background(), models.SubmissionFilter{Website: "Relay"})
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if counts.Total != 45 || counts.FailureCount != 30 || counts.SuccessCount != 15 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestSubmissionGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = NewSubmissionRepository(db).GetByID(context.Background(), "missing")
	if !errors.Is(err, interfaces.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmissionRecentLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewSubmissionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY s.created_at DESC LIMIT $1")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := repo.Recent(context.Background(), 5); err != nil {
		t.Fatalf("Recent(5): %v", err)
	}

	mock.ExpectQuery(`ORDER BY s\.created_at DESC$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	if _, err := repo.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent(0): %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
