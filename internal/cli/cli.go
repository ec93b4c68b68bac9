package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/pkg/buildinfo"
	"github.com/matzehuels/forgeboard/pkg/config"
	"github.com/matzehuels/forgeboard/pkg/session"
	"github.com/matzehuels/forgeboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "forgeboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	logOut io.Writer

	// Config is loaded before every command runs.
	Config config.Config

	configPath string
	user       string
	backend    string
	storePath  string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logOut: w,
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Forgeboard arranges personal dashboards on a size-tiered grid",
		Long: `Forgeboard manages dashboard layouts: an ordered set of widgets, each at one of
five size tiers, packed onto a 12-column grid. Layouts can be edited in the
terminal, saved under a name, shared as a token and served over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVarP(&c.user, "user", "u", "", "user whose layouts to manage")
	flags.StringVar(&c.backend, "store", "", "settings backend: memory, null, file, sqlite, redis or mongo")
	flags.StringVar(&c.storePath, "store-path", "", "file backend directory or sqlite database path")

	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.savedCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// loadConfig reads the config file and applies flag overrides.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.user != "" {
		cfg.User = c.user
	}
	if c.backend != "" {
		cfg.Store.Backend = c.backend
	}
	if c.storePath != "" {
		cfg.Store.Path = c.storePath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	c.Logger.Debug("loaded config", "user", cfg.User, "backend", cfg.Store.Backend)
	return nil
}

// =============================================================================
// Store & Session Factory
// =============================================================================

// openStore connects the configured backend.
func (c *CLI) openStore(ctx context.Context) (*store.Store, error) {
	var (
		b   store.Backend
		err error
	)
	switch c.Config.Store.Backend {
	case config.BackendRedis, config.BackendMongo:
		err = withSpinner(ctx, "Connecting to "+c.Config.Store.Backend, func() error {
			b, err = c.Config.OpenBackend(ctx)
			return err
		})
	default:
		b, err = c.Config.OpenBackend(ctx)
	}
	if err != nil {
		return nil, err
	}
	return store.New(b, nil, c.Logger), nil
}

// workspace is an open dashboard session together with its store.
type workspace struct {
	*session.Dashboard
	store *store.Store
	notes *collector
}

// openSession opens a dashboard session for the configured user. Background
// write failures are collected and reported by [workspace.Close].
func (c *CLI) openSession(ctx context.Context, opts ...session.Option) (*workspace, error) {
	st, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	n := &collector{}
	opts = append([]session.Option{
		session.WithNotifier(n),
		session.WithLogger(c.Logger),
		session.WithViewport(c.Config.Editor.ViewportWidth, c.Config.Editor.ViewportHeight),
	}, opts...)

	d, err := session.Open(ctx, st, c.Config.User, opts...)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &workspace{Dashboard: d, store: st, notes: n}, nil
}

// loadErr returns the error of the initial load, if it failed.
func (w *workspace) loadErr() error {
	return w.notes.find("load")
}

// Close waits for background writes, closes the store and returns the first
// write failure.
func (w *workspace) Close() error {
	w.Wait()
	cerr := w.store.Close()
	if err := w.notes.first(); err != nil {
		return err
	}
	return cerr
}

// collector records background write failures.
type collector struct {
	mu      sync.Mutex
	ops     []string
	errs    []error
	forward chan<- noticeMsg
}

func (n *collector) Notify(op string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ops = append(n.ops, op)
	n.errs = append(n.errs, fmt.Errorf("%s: %w", op, err))
	if n.forward != nil {
		select {
		case n.forward <- noticeMsg{op: op, err: err}:
		default:
		}
	}
}

// watch forwards later failures to ch without blocking.
func (n *collector) watch(ch chan<- noticeMsg) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forward = ch
}

func (n *collector) first() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.errs) == 0 {
		return nil
	}
	return n.errs[0]
}

func (n *collector) find(op string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, o := range n.ops {
		if o == op {
			return n.errs[i]
		}
	}
	return nil
}
