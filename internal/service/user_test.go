package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

type mockUserRepo struct {
	GetByIDFunc    func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, error)
	CreateFunc     func(ctx context.Context, user models.User) error
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.GetByEmailFunc(ctx, email)
}
func (m *mockUserRepo) Create(ctx context.Context, user models.User) error {
	return m.CreateFunc(ctx, user)
}

func TestCreateUser_Success(t *testing.T) {
	var created models.User
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, models.ErrUserNotFound
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrUserNotFound
		},
		CreateFunc: func(ctx context.Context, user models.User) error {
			created = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user := models.User{ID: "uid-1", Email: "kenny@example.com", FirstName: "Kenny"}
	got, err := svc.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}
	if got != user {
		t.Errorf("CreateUser = %+v; want %+v", got, user)
	}
	if created != user {
		t.Errorf("persisted user = %+v; want %+v", created, user)
	}
}

func TestCreateUser_IDTaken(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), models.User{ID: "uid-1", Email: "a@b.com"})
	if !errors.Is(err, models.ErrUserExists) {
		t.Fatalf("CreateUser error = %v; want ErrUserExists", err)
	}
}

func TestCreateUser_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, models.ErrUserNotFound
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return &models.User{ID: "someone-else", Email: email}, nil
		},
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), models.User{ID: "uid-1", Email: "a@b.com"})
	if !errors.Is(err, models.ErrEmailExists) {
		t.Fatalf("CreateUser error = %v; want ErrEmailExists", err)
	}
}

func TestCreateUser_LookupError(t *testing.T) {
	wantErr := errors.New("db down")
	repo := &mockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			return nil, wantErr
		},
	}
	svc := NewUserService(repo)

	_, err := svc.CreateUser(context.Background(), models.User{ID: "uid-1", Email: "a@b.com"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("CreateUser error = %v; want %v", err, wantErr)
	}
}
