package kvstore

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresGetHit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select value from kv").
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	s := NewPostgres(db)
	raw, ok, err := s.Get(context.Background(), "users")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(raw) != `[]` {
		t.Fatalf("unexpected result ok=%v raw=%q", ok, raw)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresGetMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("select value from kv").
		WithArgs("reports").
		WillReturnError(sql.ErrNoRows)

	s := NewPostgres(db)
	_, ok, err := s.Get(context.Background(), "reports")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestPostgresPutUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("insert into kv").
		WithArgs("departments", []byte(`[{"id":"1"}]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgres(db)
	if err := s.Put(context.Background(), "departments", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("delete from kv").
		WithArgs("user").
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewPostgres(db)
	if err := s.Delete(context.Background(), "user"); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
