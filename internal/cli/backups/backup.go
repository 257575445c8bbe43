package backups

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayquest/internal/cli"
	"github.com/julianstephens/dayquest/internal/constants"
	"github.com/julianstephens/dayquest/internal/models"
)

// Backup is the on-disk export format.
type Backup struct {
	Version   string          `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UserID    string          `json:"user_id,omitempty"`
	Data      models.Snapshot `json:"data"`
}

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// encode writes b as indented JSON, or as YAML with the same keys.
func encode(b Backup, format string) ([]byte, error) {
	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil || format != formatYAML {
		return raw, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// decode reads a backup written by encode. The format follows the file extension.
func decode(raw []byte, path string) (Backup, error) {
	var b Backup
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return b, err
		}
		var err error
		if raw, err = json.Marshal(doc); err != nil {
			return b, err
		}
	}
	err := json.Unmarshal(raw, &b)
	return b, err
}

type BackupCmd struct {
	Output string `short:"o" help:"File to write. Defaults to dayquest-backup-<timestamp>.<format> in the current directory."`
	Format string `short:"f" help:"File format (json|yaml)." enum:"json,yaml" default:"json"`
}

func (c *BackupCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	ws, err := tr.Snapshot(bg)
	if err != nil {
		return err
	}
	snap, err := tr.Backup(bg)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	now := time.Now()
	path := c.Output
	if path == "" {
		path = fmt.Sprintf("%s-backup-%s.%s", constants.AppName, now.Format("20060102-150405"), c.Format)
	}
	raw, err := encode(Backup{
		Version:   constants.Version,
		CreatedAt: now,
		UserID:    ws.UserID,
		Data:      snap,
	}, c.Format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	ctx.Printf("✓ Backup created: %s (%d records)\n", filepath.Base(path), len(snap.Records()))
	return nil
}

type RestoreCmd struct {
	BackupFile string `arg:"" help:"Backup file to restore (.json, .yaml or .yml)." type:"existingfile"`
}

func (c *RestoreCmd) Run(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.BackupFile)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	b, err := decode(raw, c.BackupFile)
	if err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}
	for i := range b.Data.Expenses {
		b.Data.Expenses[i].Normalize()
	}

	bg := context.Background()
	tr, err := ctx.Tracker(bg)
	if err != nil {
		return err
	}
	res, err := tr.Restore(bg, b.Data)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Printf("✓ Restored %s: %d records uploaded, %d already present\n",
		filepath.Base(c.BackupFile), len(res.Pushed), len(b.Data.Records())-len(res.Pushed))
	return nil
}
