package cli

import (
	"errors"
	"os"

	"github.com/julianstephens/summit/internal/config"
	"github.com/julianstephens/summit/internal/logger"
)

type InitCmd struct {
	WriteConfig bool `help:"Write the effective settings to the config file, replacing it." name:"write-config"`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	// Writing the current state creates the namespace slot on a fresh backend.
	if err := ctx.Adapter.Save(ctx.Snapshot()); err != nil {
		return err
	}
	ctx.Printf("Initialized summit storage at: %s\n", ctx.KV.GetConfigPath())

	if ctx.ConfigFile == "" {
		return nil
	}
	path := config.ExpandPath(ctx.ConfigFile)
	if _, err := os.Stat(path); err == nil && !c.WriteConfig {
		return nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Could not inspect config file", "path", path, "error", err)
		return nil
	}
	if err := config.Save(path, ctx.Config); err != nil {
		return err
	}
	ctx.Printf("Wrote config: %s\n", path)
	return nil
}
