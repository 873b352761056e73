package repository

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"hydraulic_dashboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantID     int
		wantErr    bool
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "alice@example.com", "h123", models.RoleViewer).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice", "alice@example.com", "h123", models.RoleViewer).
					WillReturnError(errors.New("constraint violation"))
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()
			tc.mockExpect(mock)

			id, err := repo.Create("alice", "alice@example.com", "h123", models.RoleViewer)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if id != tc.wantID {
				t.Fatalf("id = %d, want %d", id, tc.wantID)
			}
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	cols := []string{"id", "username", "email", "password_hash", "role", "created_at"}
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("operator").
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(2, "operator", "operator@hydraulic.local", "h456", models.RoleOperator, now))

		u, err := repo.GetByUsername("operator")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if u == nil || u.ID != 2 || u.Role != models.RoleOperator {
			t.Fatalf("user = %+v", u)
		}
	})

	t.Run("not found yields nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.GetByUsername("ghost")
		if err != nil {
			t.Fatalf("GetByUsername: %v", err)
		}
		if u != nil {
			t.Fatalf("user = %+v, want nil", u)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByUsernameSQL)).
			WithArgs("alice").
			WillReturnError(errors.New("db locked"))

		if _, err := repo.GetByUsername("alice"); err == nil {
			t.Fatal("expected error")
		}
	})
}
