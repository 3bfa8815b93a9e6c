package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/veildiary/internal/api"
	"github.com/dmitrijs2005/veildiary/internal/client/client"
	"github.com/dmitrijs2005/veildiary/internal/client/session"
	"github.com/stretchr/testify/require"
)

type entryCall struct {
	content   string
	public    bool
	anonymize bool
}

type fakeClient struct {
	tokens    client.Tokens
	loginErr  error
	registers []string
	entries   []entryCall
	mappings  []*api.Mapping
	saveErr   error
	deleted   []string
	profile   *api.Profile
	updates   [][2]string
	uploadURL string
	reversed  *bool
	closed    bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Ping(context.Context) error { return nil }

func (f *fakeClient) Register(_ context.Context, email, _ string) error {
	f.registers = append(f.registers, email)
	return nil
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (client.Tokens, error) {
	if f.loginErr != nil {
		return client.Tokens{}, f.loginErr
	}
	f.tokens = client.Tokens{AccessToken: "acc", RefreshToken: "ref"}
	return f.tokens, nil
}

func (f *fakeClient) SetTokens(t client.Tokens) { f.tokens = t }

func (f *fakeClient) SetUsername(_ context.Context, username string) (*api.Profile, error) {
	f.profile = &api.Profile{Username: username}
	return f.profile, nil
}

func (f *fakeClient) MyProfile(context.Context) (*api.Profile, error) {
	return f.profile, nil
}

func (f *fakeClient) Profile(_ context.Context, username string) (*api.Profile, error) {
	return &api.Profile{Username: username, Bio: "hello from " + username}, nil
}

func (f *fakeClient) UsernameExists(_ context.Context, username string) (bool, error) {
	return username == "taken", nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, bio, pictureURL string) (*api.Profile, error) {
	f.updates = append(f.updates, [2]string{bio, pictureURL})
	f.profile = &api.Profile{Username: f.profile.Username, Bio: bio, ProfilePictureURL: pictureURL}
	return f.profile, nil
}

func (f *fakeClient) AvatarUploadURL(context.Context) (string, string, error) {
	return "avatars/u1/k1", f.uploadURL, nil
}

func (f *fakeClient) Mappings(context.Context) ([]*api.Mapping, error) {
	return f.mappings, nil
}

func (f *fakeClient) SaveMapping(_ context.Context, original, pseudonym string) (*api.Mapping, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	m := &api.Mapping{ID: "m1", Original: strings.ToLower(strings.TrimSpace(original)), Pseudonym: strings.TrimSpace(pseudonym)}
	f.mappings = append([]*api.Mapping{m}, f.mappings...)
	return m, nil
}

func (f *fakeClient) DeleteMapping(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) CreateEntry(_ context.Context, content string, public, anonymize bool) (*api.Entry, error) {
	f.entries = append(f.entries, entryCall{content: content, public: public, anonymize: anonymize})
	return &api.Entry{ID: "e1", Username: "ann", Content: content, IsPublic: public, IsAnonymized: anonymize}, nil
}

func (f *fakeClient) Feed(context.Context) ([]*api.Entry, error) {
	return nil, nil
}

func (f *fakeClient) MyEntries(context.Context) ([]*api.Entry, error) {
	return []*api.Entry{{
		ID: "e1", Username: "ann", Content: "Met B. today", OriginalContent: "Met Bob today",
		IsAnonymized: true,
	}}, nil
}

func (f *fakeClient) UserEntries(_ context.Context, username string) ([]*api.Entry, error) {
	return []*api.Entry{{ID: "e2", Username: username, Content: "public words", IsPublic: true}}, nil
}

func (f *fakeClient) DeleteEntry(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeClient) Transform(_ context.Context, text string, reverse bool) (string, error) {
	f.reversed = &reverse
	if reverse {
		return strings.ReplaceAll(text, "B.", "bob"), nil
	}
	return strings.ReplaceAll(text, "Bob", "B."), nil
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

type harness struct {
	app         *App
	fake        *fakeClient
	out         *bytes.Buffer
	sessionPath string
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	out := &bytes.Buffer{}
	h := &harness{
		fake:        &fakeClient{profile: &api.Profile{Username: "ann"}},
		out:         out,
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
	}
	h.app = NewApp(out, strings.NewReader(stdin))
	h.app.dial = func(*App) (client.Client, error) { return h.fake, nil }
	return h
}

func (h *harness) loggedIn(t *testing.T) *harness {
	t.Helper()
	require.NoError(t, session.NewStore(h.sessionPath).Save(&session.Session{
		Email: "ann@example.com", AccessToken: "acc", RefreshToken: "ref",
	}))
	return h
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCmd(h.app)
	cmd.SetArgs(append(args, "--session", h.sessionPath))
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}
