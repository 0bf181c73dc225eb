package records

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/Rohan-Singhh/ResumeZen-sub000/internal/profile"
)

var recordColumns = []string{
	"id", "account_id", "plan_ref", "source_uri", "attempt_id",
	"profile", "raw_model_output", "used_fallback", "created_at",
}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analysis_records")).
		WithArgs("rec-1", "acct-1", "starter", "https://example.com/cv.pdf", "attempt-1",
			sqlmock.AnyArg(), `{"raw":true}`, false, createdAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewPGRepo(db)
	err = repo.Create(context.Background(), Record{
		ID:             "rec-1",
		AccountID:      "acct-1",
		PlanRef:        "starter",
		SourceURI:      "https://example.com/cv.pdf",
		AttemptID:      "attempt-1",
		Profile:        profile.New(),
		RawModelOutput: `{"raw":true}`,
		CreatedAt:      createdAt,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	payload := `{"contactInformation":{"name":"John Smith"},"analysis":{"atsScore":82}}`
	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_records WHERE id = $1")).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("rec-1", "acct-1", "starter", "", "attempt-1", []byte(payload), "", true, createdAt))

	repo := NewPGRepo(db)
	got, err := repo.GetByID(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Profile.ContactInformation.Name != "John Smith" {
		t.Fatalf("name = %q", got.Profile.ContactInformation.Name)
	}
	// Stored profiles come back normalized.
	if got.Profile.ContactInformation.Email != profile.NA {
		t.Fatalf("email = %q, want sentinel", got.Profile.ContactInformation.Email)
	}
	if !got.UsedFallback {
		t.Fatal("usedFallback lost")
	}
}

func TestPGRepoGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_records WHERE id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	repo := NewPGRepo(db)
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListByAccount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM analysis_records WHERE account_id = $1")).
		WithArgs("acct-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("rec-2", "acct-1", "starter", "", "attempt-2", []byte(`{}`), "", false, createdAt).
			AddRow("rec-1", "acct-1", "starter", "", "attempt-1", []byte(`{}`), "", false, createdAt.Add(-time.Hour)))

	repo := NewPGRepo(db)
	// Zero limit falls back to the default page size.
	list, err := repo.ListByAccount(context.Background(), "acct-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(list) != 2 || list[0].ID != "rec-2" {
		t.Fatalf("list = %+v", list)
	}
}
