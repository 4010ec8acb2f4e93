package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/wepost/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

const (
	qInsert       = `(?s)^INSERT\s+INTO\s+posts\s*\(author,\s*body\)\s*VALUES\s*\(\$1,\s*\$2\)\s*RETURNING\s+id\s*$`
	qDeleteByID   = `(?s)^DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s*$`
	qDeleteByBoth = `(?s)^DELETE\s+FROM\s+posts\s+WHERE\s+id\s*=\s*\$1\s+AND\s+author\s*=\s*\$2\s*$`
)

func TestInsert_ReturnsID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(7))
	mock.ExpectQuery(qInsert).
		WithArgs("bob", "hello world").
		WillReturnRows(rows)

	id, err := repo.Insert(context.Background(), &models.Post{Author: "bob", Body: "hello world"})
	if err != nil {
		t.Fatalf("Insert error: %v", err)
	}
	if id != 7 {
		t.Fatalf("unexpected id: %d", id)
	}
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WithArgs("bob", "hello").
		WillReturnError(errors.New("db down"))

	_, err := repo.Insert(context.Background(), &models.Post{Author: "bob", Body: "hello"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestDeleteByID_RowsAffected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDeleteByID).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDeleteByID).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row removed, got %d", n)
	}

	// second delete of the same id is a no-op, not an error
	n, err = repo.DeleteByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows removed, got %d", n)
	}
}

func TestDeleteByIDAndAuthor_ScopesToAuthor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDeleteByBoth).
		WithArgs(int64(1), "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteByIDAndAuthor(context.Background(), 1, "alice")
	if err != nil {
		t.Fatalf("DeleteByIDAndAuthor error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows removed for wrong author, got %d", n)
	}
}

func TestDeleteByIDAndAuthor_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(qDeleteByBoth).
		WithArgs(int64(1), "bob").
		WillReturnError(errors.New("db down"))

	_, err := repo.DeleteByIDAndAuthor(context.Background(), 1, "bob")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
