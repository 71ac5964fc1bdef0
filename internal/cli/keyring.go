package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/summit/internal/keyring"
	"github.com/julianstephens/summit/internal/storage"
)

type KeyringSetCmd struct {
	ConnString string `arg:"" optional:"" help:"PostgreSQL connection string. Prompted for when omitted."`
}

func (c *KeyringSetCmd) Run(ctx *Context) error {
	connStr := strings.TrimSpace(c.ConnString)
	if connStr == "" {
		err := huh.NewInput().
			Title("PostgreSQL connection string").
			EchoMode(huh.EchoModePassword).
			Value(&connStr).
			Run()
		if err != nil {
			return err
		}
	}
	if !storage.IsPostgresURL(connStr) && !strings.Contains(connStr, "=") {
		return fmt.Errorf("not a PostgreSQL connection string")
	}
	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored in the OS keyring.")
	ctx.Printf("Set storage.location to %q to use it.\n", storage.LocationPostgres)
	return nil
}

type KeyringGetCmd struct {
	Reveal bool `help:"Print the full connection string, password included."`
}

func (c *KeyringGetCmd) Run(ctx *Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		return err
	}
	if !c.Reveal {
		connStr = maskPassword(connStr)
	}
	ctx.Println(connStr)
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			ctx.Println("No connection string stored.")
			return nil
		}
		return err
	}
	ctx.Println("✓ Connection string removed from the OS keyring.")
	return nil
}

// maskPassword hides the password in URL ("user:pass@") and DSN
// ("password=...") forms.
func maskPassword(connStr string) string {
	if scheme := strings.Index(connStr, "://"); scheme >= 0 {
		if at := strings.LastIndex(connStr, "@"); at > scheme {
			creds := connStr[scheme+3 : at]
			if colon := strings.Index(creds, ":"); colon >= 0 {
				return connStr[:scheme+3] + creds[:colon] + ":****" + connStr[at:]
			}
		}
		return connStr
	}
	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}
