package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/dayquest/internal/cache"
	"github.com/julianstephens/dayquest/internal/config"
	"github.com/julianstephens/dayquest/internal/logger"
	"github.com/julianstephens/dayquest/internal/remote"
	"github.com/julianstephens/dayquest/internal/session"
	"github.com/julianstephens/dayquest/internal/tracker"
	"github.com/julianstephens/dayquest/internal/ui"
	"github.com/julianstephens/dayquest/internal/utils"
	"github.com/julianstephens/dayquest/internal/writeback"
)

// Context is shared by every command. Resources are opened on first use and
// released by Close.
type Context struct {
	Config  *config.Config
	DSN     string
	Offline bool
	Out     io.Writer

	cache   *cache.SQLite
	store   *remote.Postgres
	session *session.Provider
	tracker *tracker.Tracker
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// CachePath is the expanded location of the local cache file.
func (c *Context) CachePath() (string, error) {
	return utils.ExpandPath(c.Config.CachePath)
}

// Cache returns the local cache, loading it if needed. The cache must have
// been created with 'dayquest init'.
func (c *Context) Cache() (*cache.SQLite, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	path, err := c.CachePath()
	if err != nil {
		return nil, err
	}
	store := cache.NewSQLite(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	c.cache = store
	return store, nil
}

// Session returns the session provider. ErrNoSecret means sessions are not
// configured and the app runs local-only.
func (c *Context) Session() (*session.Provider, error) {
	if c.session != nil {
		return c.session, nil
	}
	p, err := session.NewProvider(c.Config.SessionSecret, session.KeyringTokens{})
	if err != nil {
		return nil, err
	}
	c.session = p
	return p, nil
}

// Remote opens the remote store when one is configured. A nil store with a nil
// error means local-only.
func (c *Context) Remote(ctx context.Context) (*remote.Postgres, error) {
	if c.store != nil || c.Offline {
		return c.store, nil
	}
	dsn, source, err := c.Config.ResolveRemoteDSN(c.DSN)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, nil
	}
	var opts []remote.Option
	if source == config.SourceKeyring {
		opts = append(opts, remote.AllowEmbeddedCredentials())
	}
	store, err := remote.NewPostgres(dsn, opts...)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	logger.Debug("remote store connected", "source", source)
	c.store = store
	return store, nil
}

// Tracker opens the working set and, when a stored session is still valid,
// signs it in, which reconciles with the remote store.
func (c *Context) Tracker(ctx context.Context) (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	local, err := c.Cache()
	if err != nil {
		return nil, err
	}

	opts := tracker.Options{
		Cache:           local,
		CompletionDelay: c.Config.CompletionDelay,
		Writeback: writeback.Options{
			MaxRetries: c.Config.WritebackRetries,
			OnFailure: func(f writeback.Failure) {
				logger.Warn("remote write failed", "op", f.Op, "attempts", f.Attempts, "error", f.Err)
			},
		},
	}
	store, err := c.Remote(ctx)
	if err != nil {
		logger.Warn("remote store unavailable, continuing local-only", "error", err)
	} else if store != nil {
		opts.Store = store
	}

	tr, err := tracker.Open(ctx, opts)
	if err != nil {
		return nil, err
	}
	c.tracker = tr

	if opts.Store == nil {
		return tr, nil
	}
	sess, err := c.Session()
	if errors.Is(err, session.ErrNoSecret) {
		return tr, nil
	}
	if err != nil {
		return nil, err
	}
	sess.Resume()
	// one-shot process: close the provider so Follow returns once the
	// transitions seen so far have been applied
	sess.Close()
	if err := tr.Follow(ctx, sess.Events()); err != nil {
		return nil, err
	}
	return tr, nil
}

// Styles returns the styles for the current theme.
func (c *Context) Styles(ctx context.Context) ui.Styles {
	if c.tracker == nil {
		return ui.New("")
	}
	ws, err := c.tracker.Snapshot(ctx)
	if err != nil {
		return ui.New("")
	}
	return ui.New(ws.Theme)
}

// Location is the timezone used to parse dates and group calendar days.
func (c *Context) Location() *time.Location {
	if c.Config == nil {
		return time.Local
	}
	loc, err := utils.LoadLocation(c.Config.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, using local", "timezone", c.Config.Timezone, "error", err)
		return time.Local
	}
	return loc
}

// Close waits for pending completions and remote writes, prints what they
// produced and releases every resource opened.
func (c *Context) Close() error {
	var errs []error
	if c.tracker != nil {
		s := c.Styles(context.Background())
		errs = append(errs, c.tracker.Close())
		for ev := range c.tracker.Events() {
			c.render(s, ev)
		}
		for _, f := range c.tracker.Failures() {
			c.Println(s.Warning.Render(fmt.Sprintf("⚠️  could not sync %s: %v", f.Op, f.Err)))
		}
	}
	if c.store != nil {
		errs = append(errs, c.store.Close())
	}
	if c.cache != nil {
		errs = append(errs, c.cache.Close())
	}
	c.tracker, c.store, c.cache = nil, nil, nil
	return errors.Join(errs...)
}

func (c *Context) render(s ui.Styles, ev tracker.Event) {
	switch ev.Kind {
	case tracker.EventTaskCompleted:
		c.Println(s.Success.Render(fmt.Sprintf("✓ Completed %q (+%d XP)", ev.Task.Title, ev.XP)))
	case tracker.EventLevelUp:
		c.Println(s.Badge.Render(fmt.Sprintf("LEVEL UP! You reached level %d", ev.Level)))
	case tracker.EventRewardsUnlocked:
		for _, r := range ev.Rewards {
			c.Println(s.Success.Render(fmt.Sprintf("%s New reward: %s", r.Icon, r.Name)))
		}
	case tracker.EventTrophiesUnlocked:
		for _, t := range ev.Trophies {
			c.Println(s.Success.Render(fmt.Sprintf("%s New trophy: %s", t.Icon, t.Name)))
		}
	case tracker.EventReconciled:
		if ev.Sync.Fallback {
			c.Println(s.Warning.Render("Remote store unreachable, working from the local cache"))
		} else if n := len(ev.Sync.Pushed); n > 0 {
			c.Println(s.Muted.Render(fmt.Sprintf("Synced, %d local records uploaded", n)))
		}
	}
}
