package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	quickserve "github.com/alnah/go-quickserve"
	"github.com/alnah/go-quickserve/internal/config"
	"github.com/alnah/go-quickserve/internal/fileutil"
	"github.com/alnah/go-quickserve/internal/hints"
	"github.com/alnah/go-quickserve/internal/yamlutil"
)

// run resolves the configuration and serves the preview until ctx is done.
func run(ctx context.Context, flags *serveFlags, env *Environment, logger *slog.Logger) error {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger)

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath, env.Config)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if flags.common.printConfig {
		return printConfig(env.Stdout, cfg)
	}

	p, err := quickserve.New(previewOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	logger.Debug("resolved project", "root", p.Root(), "addr", p.Addr())

	if err := p.Run(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			// Interrupted while building: same outcome as an interrupt while serving.
			logger.Info("interrupted before serving", "err", err)
			return nil
		}
		return withHint(err, cfg, p)
	}
	return nil
}

// loadConfig loads the named config, the flag taking precedence over the
// environment. With neither, a copy of base is returned.
func loadConfig(flagName, envName string, base *config.Config) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		cp := *base
		return &cp, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// printConfig writes cfg as YAML that LoadConfig accepts back.
func printConfig(w io.Writer, cfg *config.Config) error {
	out, err := yamlutil.Encode(cfg)
	if err != nil {
		return fmt.Errorf("printing config: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("printing config: %w", err)
	}
	return nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *serveFlags, cfg *config.Config) {
	if flags.site.root != "" {
		cfg.Root = flags.site.root
	}
	if flags.site.noMinify {
		cfg.Styles.Minify = false
	}
	if flags.server.hostSet {
		cfg.Server.Host = flags.server.host
	}
	if flags.server.portSet {
		cfg.Server.Port = flags.server.port
	}
}

// previewOptions maps a validated config onto library options.
func previewOptions(cfg *config.Config, logger *slog.Logger) []quickserve.Option {
	return []quickserve.Option{
		quickserve.WithRoot(cfg.Root),
		quickserve.WithStylesDir(cfg.Styles.Dir),
		quickserve.WithStyles(cfg.Styles.Files...),
		quickserve.WithBundleName(cfg.Styles.Bundle),
		quickserve.WithMinify(cfg.Styles.Minify),
		quickserve.WithHighlight(cfg.Styles.Highlight),
		quickserve.WithTemplatesDir(cfg.Templates.Dir),
		quickserve.WithPartialsDir(cfg.Templates.PartialsDir),
		quickserve.WithTemplates(cfg.Templates.Pages...),
		quickserve.WithVars(cfg.Templates.Vars),
		quickserve.WithScratchDir(cfg.Output.ScratchDir),
		quickserve.WithAddr(cfg.Server.Addr()),
		quickserve.WithLogger(logger),
	}
}

// withHint appends an actionable hint for failures a user can fix.
func withHint(err error, cfg *config.Config, p *quickserve.Preview) error {
	var hint string
	switch {
	case errors.Is(err, quickserve.ErrListen):
		hint = hints.ForPortInUse(p.Addr())
	case errors.Is(err, quickserve.ErrScratchExists):
		hint = hints.ForScratchExists(filepath.Join(p.Root(), cfg.Output.ScratchDir))
	case errors.Is(err, quickserve.ErrStyleNotFound):
		hint = hints.ForMissingInput(listFiles(filepath.Join(p.Root(), cfg.Styles.Dir), ".css", cfg.Styles.Bundle))
	case errors.Is(err, quickserve.ErrTemplateNotFound):
		hint = hints.ForMissingInput(listFiles(filepath.Join(p.Root(), cfg.Templates.Dir), ".html", ""))
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// listFiles returns the sorted names in dir with extension ext, minus skip.
// An unreadable directory yields nil.
func listFiles(dir, ext, skip string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext || e.Name() == skip {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
