package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/common"
	"github.com/dmitrijs2005/veildiary/internal/dbx"
	"github.com/dmitrijs2005/veildiary/internal/server/models"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/entries"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/mappings"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/veildiary/internal/server/repositories/users"
	"github.com/google/uuid"
)

// fakeManager hands out the same in-memory repositories regardless of
// the DBTX it is given.
type fakeManager struct {
	users    *fakeUsers
	tokens   *fakeTokens
	profiles *fakeProfiles
	entries  *fakeEntries
	mappings mappings.Repository
}

func newFakeManager() *fakeManager {
	return &fakeManager{
		users:    &fakeUsers{byEmail: map[string]*models.User{}},
		tokens:   &fakeTokens{rows: map[string]*models.RefreshToken{}},
		profiles: &fakeProfiles{rows: map[string]*models.Profile{}},
		entries:  &fakeEntries{},
		mappings: mappings.NewMemoryRepository(),
	}
}

func (m *fakeManager) RunMigrations(context.Context, *sql.DB) error     { return nil }
func (m *fakeManager) Users(dbx.DBTX) users.Repository                 { return m.users }
func (m *fakeManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.tokens }
func (m *fakeManager) Profiles(dbx.DBTX) profiles.Repository           { return m.profiles }
func (m *fakeManager) Entries(dbx.DBTX) entries.Repository             { return m.entries }
func (m *fakeManager) Mappings(dbx.DBTX) mappings.Repository           { return m.mappings }

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	err     error
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeTokens struct {
	mu   sync.Mutex
	rows map[string]*models.RefreshToken
}

func (f *fakeTokens) Create(_ context.Context, userID, token string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: expiresAt}
	return nil
}

func (f *fakeTokens) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTokens) Delete(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.rows[token]
	delete(f.rows, token)
	return ok, nil
}

type fakeProfiles struct {
	mu   sync.Mutex
	rows map[string]*models.Profile // by user id
	err  error
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[p.UserID]; ok {
		return nil, common.ErrAlreadyExists
	}
	for _, other := range f.rows {
		if other.Username == p.Username {
			return nil, common.ErrAlreadyExists
		}
	}
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	f.rows[p.UserID] = p
	return p, nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfiles) GetByUsername(_ context.Context, username string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.rows {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeProfiles) Update(_ context.Context, userID, bio, pictureURL string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.Bio = bio
	p.ProfilePictureURL = pictureURL
	return p, nil
}

type fakeEntries struct {
	mu   sync.Mutex
	rows []*models.Entry
	tick int
	err  error
}

func (f *fakeEntries) Create(_ context.Context, e *models.Entry) (*models.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tick++
	e.CreatedAt = time.Date(2024, 1, 1, 0, 0, f.tick, 0, time.UTC)
	c := *e
	f.rows = append(f.rows, &c)
	return e, nil
}

func (f *fakeEntries) ListPublic(_ context.Context, limit int) ([]*models.Entry, error) {
	return f.filter(func(e *models.Entry) bool { return e.IsPublic }, limit), nil
}

func (f *fakeEntries) ListByUser(_ context.Context, userID string, publicOnly bool, limit int) ([]*models.Entry, error) {
	return f.filter(func(e *models.Entry) bool {
		return e.UserID == userID && (!publicOnly || e.IsPublic)
	}, limit), nil
}

func (f *fakeEntries) Delete(_ context.Context, userID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.rows {
		if e.ID == id && e.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeEntries) filter(keep func(*models.Entry) bool, limit int) []*models.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Entry, 0)
	for _, e := range f.rows {
		if keep(e) {
			c := *e
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func profileFor(userID, username string) *models.Profile {
	return &models.Profile{UserID: userID, Username: username}
}
