package records

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

const (
	selectQ = `(?s)^SELECT\s+value\s+FROM\s+records\s+WHERE\s+key\s*=\s*\$1$`
	upsertQ = `(?s)^INSERT\s+INTO\s+records\s*\(key,\s*value,\s*updated_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*now\(\)\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE`
	deleteQ = `(?s)^DELETE\s+FROM\s+records\s+WHERE\s+key\s*=\s*\$1$`
	listQ   = `(?s)^SELECT\s+key,\s*value\s+FROM\s+records$`
)

func TestPostgres_Get_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("accounts").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{}`)))

	v, err := repo.Get(context.Background(), "accounts")
	require.NoError(t, err)
	require.Equal(t, []byte(`{}`), v)
}

func TestPostgres_Get_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	v, err := repo.Get(context.Background(), "ghost")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPostgres_Get_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("k").WillReturnError(errors.New("db down"))

	_, err := repo.Get(context.Background(), "k")
	require.Error(t, err)
	require.Regexp(t, regexp.MustCompile(`failed to get record\[k\]: db down`), err.Error())
}

func TestPostgres_Set(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsertQ).WithArgs("session", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "session", []byte("v")))
}

func TestPostgres_Set_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(upsertQ).WithArgs("session", []byte("v")).
		WillReturnError(errors.New("boom"))

	require.ErrorContains(t, repo.Set(context.Background(), "session", []byte("v")), "failed to set record[session]")
}

func TestPostgres_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(deleteQ).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "k"))
}

func TestPostgres_List(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
		AddRow("accounts", []byte(`{}`)).
		AddRow("session", []byte(`{"token":"t"}`)))

	m, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, m, 2)
	require.Equal(t, []byte(`{"token":"t"}`), m["session"])
}

func TestPostgres_List_RowError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQ).WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte("1")).
		RowError(0, errors.New("row broke")))

	_, err := repo.List(context.Background())
	require.ErrorContains(t, err, "failed to iterate record rows")
}
