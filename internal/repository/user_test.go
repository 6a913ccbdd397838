package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

func setupUserMock(t *testing.T) (*PostgresUserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestUserGetByID_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '') FROM users WHERE id = $1`)).
		WithArgs("uid-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name"}).
			AddRow("uid-1", "kenny@example.com", "Kenny", "Gunderman"))

	user, err := repo.GetByID(context.Background(), "uid-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "kenny@example.com" {
		t.Errorf("Email = %q; want kenny@example.com", user.Email)
	}
	if user.FirstName != "Kenny" {
		t.Errorf("FirstName = %q; want Kenny", user.FirstName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '') FROM users WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name"}))

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, models.ErrUserNotFound) {
		t.Fatalf("error = %v; want ErrUserNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserGetByEmail_Found(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, COALESCE(first_name, ''), COALESCE(last_name, '') FROM users WHERE email = $1`)).
		WithArgs("kenny@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name"}).
			AddRow("uid-1", "kenny@example.com", "", ""))

	user, err := repo.GetByEmail(context.Background(), "kenny@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "uid-1" {
		t.Errorf("ID = %q; want uid-1", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserCreate(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (id, email, first_name, last_name) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))`)).
		WithArgs("uid-1", "kenny@example.com", "Kenny", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), models.User{
		ID: "uid-1", Email: "kenny@example.com", FirstName: "Kenny",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestUserUpsert(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (id) DO UPDATE SET`)).
		WithArgs("uid-1", "kenny@example.com", "Kenny", "Gunderman").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), models.User{
		ID: "uid-1", Email: "kenny@example.com", FirstName: "Kenny", LastName: "Gunderman",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
