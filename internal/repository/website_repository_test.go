package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"smsguide/internal/interfaces"
	"smsguide/internal/models"
)

func TestWebsiteDeleteBlockedBySubmissions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM submissions WHERE website_id = $1")).
		WithArgs("w1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err = NewWebsiteRepository(db).Delete(context.Background(), "w1")
	var blocked *interfaces.DeletionBlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected DeletionBlockedError, got %v", err)
	}
	if blocked.References["submissions"] != 3 {
		t.Fatalf("unexpected references %v", blocked.References)
	}
}

func TestWebsiteListFiltersStatuses(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "url", "status", "created_at"}))

	got, err := NewWebsiteRepository(db).List(context.Background(), models.WebsiteStatusActive, models.WebsiteStatusPersonal)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}

func TestCountryCreateDuplicateCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO countries")).
		WithArgs("India", "in", "+91").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "countries_code_key"})

	err = NewCountryRepository(db).Create(context.Background(), &models.Country{Name: "India", Code: "in", PhoneCode: "+91"})
	if !errors.Is(err, interfaces.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
