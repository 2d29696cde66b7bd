package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formblock"
	"github.com/goliatone/go-formblock/internal/config"
	"github.com/goliatone/go-formblock/internal/logging"
	"github.com/goliatone/go-formblock/pkg/content"
	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/renderers/html"
	"github.com/goliatone/go-formblock/pkg/renderers/html/fields"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

// errSubmitFailed marks a submission that ended with an error state. The
// state itself has already been printed, as are lint issues before
// errLintFailed.
var errSubmitFailed = errors.New("submission failed")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errSubmitFailed) && !errors.Is(err, errLintFailed) {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

// app holds state shared by every subcommand: flag values, the loaded
// configuration and the logger built from it.
type app struct {
	stderr io.Writer

	configPath   string
	logLevel     string
	logFormat    string
	contentDir   string
	templatesDir string
	endpoint     string
	listen       string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:   "formblock",
		Short: "Render CMS form blocks and submit them to a form backend",
		Long: `formblock renders form blocks authored in a headless CMS as HTML or text,
submits them to a form backend and serves a local preview.

Settings are read from a TOML file (--config); flags override the file.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup() },
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default info)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (default text)")

	root.AddCommand(
		renderCmd(a),
		submitCmd(a),
		serveCmd(a),
		lintCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg := config.Default()
	if path := strings.TrimSpace(a.configPath); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Apply(config.Overrides{
		LogLevel:     a.logLevel,
		LogFormat:    a.logFormat,
		ContentDir:   a.contentDir,
		TemplatesDir: a.templatesDir,
		Endpoint:     a.endpoint,
		Listen:       a.listen,
	}); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) contentFS() fs.FS {
	if dir := a.cfg.Content.Dir; dir != "" {
		return os.DirFS(dir)
	}
	return content.EmbeddedFS()
}

func (a *app) htmlOptions() []html.Option {
	if dir := a.cfg.Content.TemplatesDir; dir != "" {
		return []html.Option{html.WithTemplatesDir(dir)}
	}
	return nil
}

func (a *app) store() (*content.Store, error) {
	store, err := formblock.LoadBlocks(a.contentFS())
	if err != nil {
		return nil, err
	}
	if store.Empty() {
		a.logger.Warn("no form blocks found", "dir", a.cfg.Content.Dir)
	}
	return store, nil
}

func (a *app) block(store *content.Store, id string) (formblock.Block, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return formblock.Block{}, fmt.Errorf("--block is required, available: %s", strings.Join(ids, ", "))
		}
		id = ids[0]
	}
	block, ok := store.Block(id)
	if !ok {
		return formblock.Block{}, fmt.Errorf("block %q not found, available: %s", id, strings.Join(store.IDs(), ", "))
	}
	return block, nil
}

// theme builds renderer configuration from the [theme] table. It returns nil
// when the table is empty.
func (a *app) theme() *theme.RendererConfig {
	t := a.cfg.Theme
	if t.Name == "" && len(t.Partials) == 0 && len(t.Tokens) == 0 {
		return nil
	}
	manifest := &theme.Manifest{
		Name:      t.Name,
		Tokens:    t.Tokens,
		Templates: t.Partials,
	}
	return render.ThemeFromManifest(manifest, t.Variant, fields.DefaultPartials())
}
