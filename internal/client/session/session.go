// Package session persists the CLI's login tokens between invocations.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dmitrijs2005/veildiary/internal/filex"
)

// Session is what a successful login leaves behind.
type Session struct {
	Email        string `json:"email,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// LoggedIn reports whether the session carries any token.
func (s *Session) LoggedIn() bool {
	return s != nil && (s.AccessToken != "" || s.RefreshToken != "")
}

// Store reads and writes a Session as a 0600 JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the stored session. A missing file is an empty session.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	sess := &Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", s.path, err)
	}
	return sess, nil
}

func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(s.path, data, 0o600)
}

// UpdateTokens keeps the stored email and replaces both tokens.
func (s *Store) UpdateTokens(access, refresh string) error {
	sess, err := s.Load()
	if err != nil {
		sess = &Session{}
	}
	sess.AccessToken = access
	sess.RefreshToken = refresh
	return s.Save(sess)
}

// Clear removes the session file. Clearing twice is fine.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
