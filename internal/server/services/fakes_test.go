package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/growlog/internal/common"
	"github.com/dmitrijs2005/growlog/internal/dbx"
	"github.com/dmitrijs2005/growlog/internal/server/config"
	"github.com/dmitrijs2005/growlog/internal/server/models"
	plantsrepo "github.com/dmitrijs2005/growlog/internal/server/repositories/plants"
	refreshtokensrepo "github.com/dmitrijs2005/growlog/internal/server/repositories/refreshtokens"
	usersrepo "github.com/dmitrijs2005/growlog/internal/server/repositories/users"
)

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

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "plants",
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// --- users ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	err    error
	nextID int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	f.nextID++
	c := *u
	c.ID = fmt.Sprintf("u%d", f.nextID)
	c.CreatedAt = time.Now()
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	mu      sync.Mutex
	tokens  map[string]*models.RefreshToken
	findErr error
	delErr  error
	addErr  error
	purged  time.Time
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{tokens: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, validity time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	t, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purged = now
	var n int64
	for k, t := range f.tokens {
		if t.Expires.Before(now) {
			delete(f.tokens, k)
			n++
		}
	}
	return n, nil
}

// --- plants ---

type fakePlantsRepo struct {
	mu     sync.Mutex
	byID   map[string]*models.Plant
	nextID int
	clock  time.Time
	err    error
}

func newFakePlantsRepo() *fakePlantsRepo {
	return &fakePlantsRepo{
		byID:  map[string]*models.Plant{},
		clock: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakePlantsRepo) Create(_ context.Context, p *models.Plant) (*models.Plant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.nextID++
	f.clock = f.clock.Add(time.Second)
	c := *p
	c.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", f.nextID)
	c.CreatedAt = f.clock
	c.UpdatedAt = f.clock
	f.byID[c.ID] = &c
	return &c, nil
}

func (f *fakePlantsRepo) FindByID(_ context.Context, id, ownerID string) (*models.Plant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if p.UserID != ownerID {
		return nil, common.ErrorForbidden
	}
	return p, nil
}

func (f *fakePlantsRepo) FindAllByOwner(_ context.Context, ownerID string) ([]*models.Plant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.Plant{}
	for _, p := range f.byID {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePlantsRepo) DeleteByID(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePlantsRepo) DeleteAllByOwner(_ context.Context, ownerID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for id, p := range f.byID {
		if p.UserID == ownerID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakePlantsRepo) SetPhotoKey(_ context.Context, id, ownerID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.byID[id]
	if !ok || p.UserID != ownerID {
		return common.ErrorNotFound
	}
	k := key
	p.PhotoKey = &k
	return nil
}

func (f *fakePlantsRepo) ClearPhotoKey(_ context.Context, id, ownerID, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	p, ok := f.byID[id]
	if ok && p.UserID == ownerID && p.PhotoKey != nil && *p.PhotoKey == key {
		p.PhotoKey = nil
	}
	return nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	p *fakePlantsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRefreshRepo(), p: newFakePlantsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error           { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository { return m.r }
func (m *fakeRepoManager) Plants(db dbx.DBTX) plantsrepo.Repository               { return m.p }

// --- photos ---

type fakePhotos struct {
	putKey, putContentType string
	getKey                 string
	err                    error
}

func (f *fakePhotos) PresignPut(_ context.Context, key, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.putKey, f.putContentType = key, contentType
	return "https://s3.test/put/" + key, nil
}

func (f *fakePhotos) PresignGet(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.getKey = key
	return "https://s3.test/get/" + key, nil
}
