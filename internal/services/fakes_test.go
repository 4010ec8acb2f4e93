package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/wepost/internal/common"
	"github.com/dmitrijs2005/wepost/internal/config"
	"github.com/dmitrijs2005/wepost/internal/dbx"
	"github.com/dmitrijs2005/wepost/internal/logging"
	"github.com/dmitrijs2005/wepost/internal/models"
	postsrepo "github.com/dmitrijs2005/wepost/internal/repositories/posts"
	usersrepo "github.com/dmitrijs2005/wepost/internal/repositories/users"
)

// --- in-memory repositories ---

type memUsersRepo struct {
	mu   sync.Mutex
	rows map[string]*models.User

	getErr    error
	insertErr error
	updateErr error
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{rows: make(map[string]*models.User)}
}

func (f *memUsersRepo) Get(ctx context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *memUsersRepo) InsertIfAbsent(ctx context.Context, user *models.User) (bool, error) {
	if f.insertErr != nil {
		return false, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[user.Username]; ok {
		return false, nil
	}
	cp := *user
	f.rows[user.Username] = &cp
	return true, nil
}

func (f *memUsersRepo) UpdateTier(ctx context.Context, username string, tier int) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.rows[username]
	if !ok {
		return false, nil
	}
	u.Tier = tier
	return true, nil
}

type memPostsRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Post

	insertErr error
	deleteErr error
}

func newMemPostsRepo() *memPostsRepo {
	return &memPostsRepo{nextID: 1, rows: make(map[int64]*models.Post)}
}

func (f *memPostsRepo) Insert(ctx context.Context, post *models.Post) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++ // ids are never reused, even after deletion
	cp := *post
	cp.ID = id
	f.rows[id] = &cp
	return id, nil
}

func (f *memPostsRepo) DeleteByID(ctx context.Context, id int64) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

func (f *memPostsRepo) DeleteByIDAndAuthor(ctx context.Context, id int64, author string) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok || p.Author != author {
		return 0, nil
	}
	delete(f.rows, id)
	return 1, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *memUsersRepo
	p *memPostsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newMemUsersRepo(), p: newMemPostsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository       { return m.p }

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type testEnv struct {
	rm    *fakeRepoManager
	db    *sql.DB
	mock  sqlmock.Sqlmock
	authz *Authorizer
	dir   *Directory
	posts *PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	log := testLogger()
	cfg := &config.Config{AdminPassword: "bootstrap-secret"}
	authz := NewAuthorizer(rm, log)
	return &testEnv{
		rm:    rm,
		db:    db,
		mock:  mock,
		authz: authz,
		dir:   NewDirectory(db, rm, authz, cfg, log),
		posts: NewPostService(db, rm, authz, log),
	}
}

// expectTx queues transaction expectations for one WithTx flow.
func (e *testEnv) expectTx(commit bool) {
	e.mock.ExpectBegin()
	if commit {
		e.mock.ExpectCommit()
	} else {
		e.mock.ExpectRollback()
	}
}
