package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/veildiary/internal/client/client"
	"github.com/dmitrijs2005/veildiary/internal/client/config"
	"github.com/dmitrijs2005/veildiary/internal/client/session"
	"github.com/dmitrijs2005/veildiary/internal/logging"
)

var ErrNotLoggedIn = errors.New("not logged in, run `veildiary login` first")

// DialFunc connects to the server once configuration and session are known.
type DialFunc func(a *App) (client.Client, error)

// App carries everything a command needs. Commands get it through closures
// built in NewRootCmd.
type App struct {
	out    io.Writer
	reader *bufio.Reader

	cfg     *config.Config
	store   *session.Store
	session *session.Session
	client  client.Client
	logger  logging.Logger

	httpClient *http.Client
	dial       DialFunc
	password   func(prompt string) (string, error)
}

func NewApp(out io.Writer, in io.Reader) *App {
	a := &App{
		out:    out,
		reader: bufio.NewReader(in),
		logger: logging.Nop{},
		dial:   dialGRPC,
	}
	a.password = func(prompt string) (string, error) {
		return GetPassword(a.reader, prompt, a.out)
	}
	return a
}

func dialGRPC(a *App) (client.Client, error) {
	return client.NewGRPCClient(a.cfg.ServerEndpointAddr, []client.Option{
		client.WithTokens(client.Tokens{
			AccessToken:  a.session.AccessToken,
			RefreshToken: a.session.RefreshToken,
		}),
		client.WithRefreshHook(a.persistTokens),
	})
}

func (a *App) persistTokens(t client.Tokens) {
	a.session.AccessToken = t.AccessToken
	a.session.RefreshToken = t.RefreshToken
	if err := a.store.UpdateTokens(t.AccessToken, t.RefreshToken); err != nil {
		a.logger.Warn(context.Background(), "cannot persist refreshed tokens", "error", err)
		return
	}
	a.logger.Debug(context.Background(), "access token refreshed")
}

// requestContext bounds a single command by the configured timeout.
func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg == nil || a.cfg.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.cfg.RequestTimeout)
}

func (a *App) requireLogin() error {
	if !a.session.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}
