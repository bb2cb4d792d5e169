package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/domain"
	"github.com/jhoicas/factory-api/internal/domain/entity"
	"github.com/jhoicas/factory-api/internal/domain/repository"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

var (
	userCols      = []string{"id", "email", "name", "role", "is_active", "password_hash", "last_login", "created_at", "updated_at"}
	componentCols = []string{"id", "name", "type", "quality", "status", "location", "created_at", "updated_at"}
)

// ---------- Users ----------

func TestUserRepo_CreateYEmailDuplicado(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)
	ctx := context.Background()
	now := time.Now()
	u := &entity.User{ID: "u-1", Email: "a@factory.io", Name: "A", Role: "manager", IsActive: true, PasswordHash: "h", CreatedAt: now, UpdatedAt: now}

	insert := regexp.QuoteMeta(`INSERT INTO users (` + userColumns + `)`)
	mock.ExpectExec(insert).
		WithArgs(u.ID, u.Email, u.Name, u.Role, u.IsActive, u.PasswordHash, u.LastLogin, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(insert).
		WithArgs(u.ID, u.Email, u.Name, u.Role, u.IsActive, u.PasswordHash, u.LastLogin, u.CreatedAt, u.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	err := r.Create(ctx, u)
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)
	ctx := context.Background()
	now := time.Now()

	query := regexp.QuoteMeta(`SELECT ` + userColumns + ` FROM users WHERE email = $1`)
	mock.ExpectQuery(query).WithArgs("a@factory.io").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u-1", "a@factory.io", "A", "producer", true, "h", "01/02/24 10:00:00", now, now))
	u, err := r.GetByEmail(ctx, "a@factory.io")
	require.NoError(t, err)
	assert.Equal(t, "producer", u.Role)
	assert.Equal(t, "01/02/24 10:00:00", u.LastLogin)

	mock.ExpectQuery(query).WithArgs("none@factory.io").WillReturnError(pgx.ErrNoRows)
	u, err = r.GetByEmail(ctx, "none@factory.io")
	require.NoError(t, err)
	assert.Nil(t, u)

	mock.ExpectQuery(query).WithArgs("x").WillReturnError(errors.New("conn closed"))
	_, err = r.GetByEmail(ctx, "x")
	assert.Error(t, err)
}

func TestUserRepo_Delete(t *testing.T) {
	mock := newMock(t)
	r := NewUserRepository(mock)

	del := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)
	mock.ExpectExec(del).WithArgs("u-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(del).WithArgs("u-2").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	ok, err := r.Delete(context.Background(), "u-1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Delete(context.Background(), "u-2")
	require.NoError(t, err)
	assert.False(t, ok)
}

// ---------- Components ----------

func TestComponentRepo_NextSequence(t *testing.T) {
	mock := newMock(t)
	r := NewComponentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT nextval('component_name_seq')`)).
		WillReturnRows(pgxmock.NewRows([]string{"nextval"}).AddRow(int64(7)))
	seq, err := r.NextSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), seq)
}

func TestComponentRepo_FindForAssemblyBloqueaFila(t *testing.T) {
	mock := newMock(t)
	r := NewComponentRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM components\s+WHERE type = \$1 .*ORDER BY \(quality <> 'null' AND status <> 'rejected'\) DESC, created_at, id.*FOR UPDATE`).
		WithArgs("A", "").
		WillReturnRows(pgxmock.NewRows(componentCols).AddRow("c-1", "C1", "A", "B", "assembled", "assembler", now, now))
	c, err := r.FindForAssembly(context.Background(), "A", "")
	require.NoError(t, err)
	assert.Equal(t, "C1", c.Name)

	mock.ExpectQuery(`FOR UPDATE`).WithArgs("B", "c-1").WillReturnError(pgx.ErrNoRows)
	c, err = r.FindForAssembly(context.Background(), "B", "c-1")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestComponentRepo_Update(t *testing.T) {
	mock := newMock(t)
	r := NewComponentRepository(mock)
	c := &entity.Component{ID: "c-1", Type: "A", Quality: "B", Status: "assembled", Location: "assembler", UpdatedAt: time.Now()}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE components SET type = $2`)).
		WithArgs(c.ID, c.Type, c.Quality, c.Status, c.Location, c.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(context.Background(), c))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE components SET status = $2`)).
		WithArgs("c-1", "rejected").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdateStatus(context.Background(), "c-1", "rejected"))
}

// ---------- Devices ----------

func TestDeviceRepo_ListYGet(t *testing.T) {
	mock := newMock(t)
	r := NewDeviceRepository(mock)
	now := time.Now()
	cols := []string{"id", "name", "component_1", "component_2", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM devices ORDER BY created_at, id LIMIT $1 OFFSET $2`)).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("d-1", "D1", "A", "B", now, now).
			AddRow("d-2", "", "C", "C", now, now))
	list, err := r.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Empty(t, list[1].Name)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM devices WHERE id = $1`)).WithArgs("d-9").WillReturnError(pgx.ErrNoRows)
	d, err := r.GetByID(context.Background(), "d-9")
	require.NoError(t, err)
	assert.Nil(t, d)
}

// ---------- TxRunner ----------

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMock(t)
	runner := NewTxRunner(mock)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE components SET status = $2`)).
		WithArgs("c-1", "rejected").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()
	err := runner.Run(ctx, func(components repository.ComponentRepository, _ repository.DeviceRepository) error {
		return components.UpdateStatus(ctx, "c-1", "rejected")
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = runner.Run(ctx, func(repository.ComponentRepository, repository.DeviceRepository) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
