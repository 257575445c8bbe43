package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/keyring"
	"github.com/julianstephens/dayquest/internal/remote"
)

// KeyringSetCmd stores the remote store connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string (URI or key=value DSN)."`
}

// Run accepts a connection string with an embedded password here, and only
// here, since the keyring is already a secret store.
func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if _, err := remote.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, remote.ErrEmbeddedCredentials) {
			return err
		}
		ctx.Println("⚠️  Connection string embeds a password. It is kept in the OS keyring as-is,")
		ctx.Println("   but the same string is rejected by --remote and DAYQUEST_REMOTE_DSN.")
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to save connection string: %w", err)
	}
	ctx.Println("✓ Remote store connection string saved")
	ctx.Println("  Run 'dayquest login' to start syncing")
	return nil
}

// KeyringGetCmd prints the stored connection string with any password masked.
type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string in keyring, use 'dayquest keyring set' to add one")
	}
	if err != nil {
		return fmt.Errorf("failed to read connection string: %w", err)
	}
	ctx.Println(redact(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string in keyring")
		}
		return fmt.Errorf("failed to remove connection string: %w", err)
	}
	ctx.Println("✓ Remote store connection string removed")
	return nil
}

// KeyringStatusCmd reports whether the keyring works and what it holds.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	ctx.Println("✓ OS keyring is available")

	for _, entry := range []struct {
		label string
		get   func() (string, error)
	}{
		{"Remote store", keyring.GetConnectionString},
		{"Session", keyring.GetSessionToken},
	} {
		_, err := entry.get()
		switch {
		case err == nil:
			ctx.Printf("  %-13s stored\n", entry.label)
		case errors.Is(err, keyring.ErrNotFound):
			ctx.Printf("  %-13s none\n", entry.label)
		default:
			ctx.Printf("  %-13s unreadable: %v\n", entry.label, err)
		}
	}
	return nil
}

// redact hides the password of a URI or key=value connection string.
func redact(connStr string) string {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		return u.Redacted()
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
