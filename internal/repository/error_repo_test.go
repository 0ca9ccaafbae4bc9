package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"telemetry_monitor/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func ctx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestErrorSQLite_Append_WithDefaults(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	raw := `{"data": "not:enough:colons"}`
	mock.ExpectExec(regexp.QuoteMeta(insertErrorSQL)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), raw).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(ctx(t), models.ErrorEntry{Raw: raw}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_Append_KeepsGivenIDAndTime(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.FixedZone("UTC+2", 2*3600))
	mock.ExpectExec(regexp.QuoteMeta(insertErrorSQL)).
		WithArgs("entry-1", "2025-03-04T03:06:07Z", "garbage").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(ctx(t), models.ErrorEntry{EntryID: "entry-1", ReceivedAt: at, Raw: "garbage"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_Append_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectExec("INSERT INTO error_buffer").
		WillReturnError(errors.New("down"))

	err := repo.Append(ctx(t), models.ErrorEntry{Raw: "x"})
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Fatalf("expected error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_List_OrderedAndEmpty(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectErrorsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"message"}).
			AddRow("first").
			AddRow("second"))
	mock.ExpectQuery(regexp.QuoteMeta(selectErrorsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"message"}))

	got, err := repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected list: %v", got)
	}

	got, err = repo.List(ctx(t))
	if err != nil {
		t.Fatalf("List empty: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_List_QueryError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectErrorsSQL)).
		WillReturnError(errors.New("locked"))

	if _, err := repo.List(ctx(t)); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_Count(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectQuery(regexp.QuoteMeta(countErrorsSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.Count(ctx(t))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 5 {
		t.Fatalf("want 5, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_Clear_ReturnsRowsAffected(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteErrorsSQL)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(deleteErrorsSQL)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.Clear(ctx(t))
	if err != nil || n != 3 {
		t.Fatalf("first Clear: n=%d err=%v", n, err)
	}
	n, err = repo.Clear(ctx(t))
	if err != nil || n != 0 {
		t.Fatalf("second Clear: n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestErrorSQLite_Clear_DBError(t *testing.T) {
	t.Parallel()

	db, mock := newMock(t)
	repo := NewErrorSQLite(db)

	mock.ExpectExec(regexp.QuoteMeta(deleteErrorsSQL)).
		WillReturnError(errors.New("disk full"))

	if _, err := repo.Clear(ctx(t)); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}
