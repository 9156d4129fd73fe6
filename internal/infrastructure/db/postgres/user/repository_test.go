package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "files-manager-api/internal/domain/user"
)

var userCols = []string{"id", "email", "password_hash", "created_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	tests := []struct {
		name    string
		setup   func(m pgxmock.PgxPoolIface)
		want    *domain.User
		wantErr bool
	}{
		{
			name: "found",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(SelectUserByEmail).WithArgs("bob@dylan.com").
					WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "bob@dylan.com", "hash", now))
			},
			want: &domain.User{UUID: id, Email: "bob@dylan.com", PasswordHash: "hash", CreatedAt: now},
		},
		{
			name: "no rows -> nil, nil",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(SelectUserByEmail).WithArgs("bob@dylan.com").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "db error",
			setup: func(m pgxmock.PgxPoolIface) {
				m.ExpectQuery(SelectUserByEmail).WithArgs("bob@dylan.com").WillReturnError(errors.New("conn reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.setup(mock)

			got, err := NewRepository(mock).FetchUserByEmail(context.Background(), "bob@dylan.com")
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FetchUserByID(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	mock := newMock(t)

	mock.ExpectQuery(SelectUserByID).WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "a@b.c", "hash", now))

	got, err := NewRepository(mock).FetchUserByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.UUID)
	assert.Equal(t, "a@b.c", got.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	t.Run("created", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(InsertUser).WithArgs("a@b.c", "hash").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(id, "a@b.c", "hash", now))

		got, err := NewRepository(mock).CreateUser(context.Background(), domain.User{Email: "a@b.c", PasswordHash: "hash"})
		require.NoError(t, err)
		assert.Equal(t, id, got.UUID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(InsertUser).WithArgs("a@b.c", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		got, err := NewRepository(mock).CreateUser(context.Background(), domain.User{Email: "a@b.c", PasswordHash: "hash"})
		require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CountUsers(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(CountUsers).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	n, err := NewRepository(mock).CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
