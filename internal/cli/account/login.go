package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/session"
)

type LoginCmd struct {
	Token string `arg:"" optional:"" help:"Signed session token (JWT)."`
	User  string `help:"Mint a token for this user id with the local secret instead. For development." short:"u"`
}

func (c *LoginCmd) Validate() error {
	if (c.Token == "") == (c.User == "") {
		return errors.New("pass either a token or --user")
	}
	return nil
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		if errors.Is(err, session.ErrNoSecret) {
			return fmt.Errorf("%w: set DAYQUEST_SESSION_SECRET", err)
		}
		return err
	}

	token := c.Token
	if c.User != "" {
		token, err = sess.Issue(c.User, ctx.Config.SessionTTL)
		if err != nil {
			return err
		}
	}
	userID, err := sess.Login(token)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	ctx.Printf("Signed in as %s\n", userID)

	// opening the tracker applies the sign-in and reconciles
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	if ws, err := tr.Snapshot(bg); err == nil && ws.UserID == "" {
		ctx.Println("No remote store configured, working local-only")
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err == nil {
		sess.Logout()
	} else if err := keyring.DeleteSessionToken(); err != nil {
		return err
	}
	ctx.Println("Signed out. Local data is kept on this device.")
	return nil
}

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	res, err := tr.Sync(bg)
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	tr.Flush()

	if res.Fallback {
		return errors.New("remote store unreachable, nothing synced")
	}
	ctx.Printf("✓ Synced: %d tasks, %d expenses, %d appointments (%d uploaded)\n",
		len(res.Snapshot.Tasks), len(res.Snapshot.Expenses), len(res.Snapshot.Appointments), len(res.Pushed))
	return nil
}
