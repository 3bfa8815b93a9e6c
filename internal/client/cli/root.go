package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/veildiary/internal/client/config"
	"github.com/dmitrijs2005/veildiary/internal/client/session"
	"github.com/dmitrijs2005/veildiary/internal/logging"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath  string
	server      string
	sessionFile string
	timeout     time.Duration
	verbose     bool
}

// NewRootCmd builds the command tree around a.
func NewRootCmd(a *App) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:   "veildiary",
		Short: "A social diary that can hide the names in your entries",
		Long: `veildiary writes diary entries to a veildiary server.
Entries can be public or private, and the names you list with
"veildiary mappings add" can be swapped for pseudonyms before publishing.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, &f)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.client == nil {
				return nil
			}
			return a.client.Close()
		},
	}
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "path to JSON config file")
	pf.StringVarP(&f.server, "server", "a", "", "address and port of the veildiary server")
	pf.StringVar(&f.sessionFile, "session", "", "path of the session file")
	pf.DurationVar(&f.timeout, "timeout", 0, "per-request timeout")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging to stderr")

	root.AddCommand(
		newPingCmd(a),
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newUsernameCmd(a),
		newProfileCmd(a),
		newMappingsCmd(a),
		newWriteCmd(a),
		newFeedCmd(a),
		newMineCmd(a),
		newUserCmd(a),
		newRmCmd(a),
		newTransformCmd(a),
	)
	return root
}

// setup resolves configuration (defaults, file, env, then flags), loads the
// session and dials the server.
func (a *App) setup(cmd *cobra.Command, f *rootFlags) error {
	level := "warn"
	if f.verbose {
		level = "debug"
	}
	a.logger = logging.NewJSONLogger(cmd.ErrOrStderr(), level).With("module", "cli")

	cfg, err := config.Load(f.configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerEndpointAddr = f.server
	}
	if flags.Changed("session") {
		cfg.SessionFile = f.sessionFile
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout = f.timeout
	}
	a.cfg = cfg

	a.store = session.NewStore(cfg.SessionFile)
	sess, err := a.store.Load()
	if err != nil {
		return err
	}
	a.session = sess

	c, err := a.dial(a)
	if err != nil {
		return err
	}
	a.client = c

	a.logger.Debug(cmd.Context(), "client ready", "server", cfg.ServerEndpointAddr, "session", cfg.SessionFile)
	return nil
}

// Execute runs the CLI against os.Args and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := NewApp(os.Stdout, os.Stdin)
	if err := NewRootCmd(a).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
