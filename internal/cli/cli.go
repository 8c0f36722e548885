// Package cli implements the imagewall command-line interface.
//
// The commands are:
//   - view: open a window showing the image wall for a catalog
//   - inspect: print the layout and grid geometry a catalog would get
//   - cache: manage the fetched image cache
//
// Settings come from an optional TOML file (--config) and are overridden by
// flags. All commands support --verbose (-v) for debug-level logging; the
// logger travels through the command context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"imagewall/internal/config"
)

const appName = "imagewall"

const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the logger and the flags shared by every command
type CLI struct {
	Logger *log.Logger

	configPath  string
	catalogPath string
	limit       int
	width       int
	height      int
	noCache     bool
	debug       bool
}

// New creates a CLI logging to w at level
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the log level after flags are parsed
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "imagewall shows an endless, draggable wall of images",
		Long:         `imagewall lays a catalog of images out on a wrapping grid that can be dragged, flicked and scrolled in any direction. Clicking an image reports its slug.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "TOML config file")
	pf.StringVar(&c.catalogPath, "catalog", "", "catalog JSON file (overrides config)")
	pf.IntVar(&c.limit, "limit", 0, "max images shown (overrides config)")
	pf.IntVar(&c.width, "width", 0, "window width (overrides config)")
	pf.IntVar(&c.height, "height", 0, "window height (overrides config)")
	pf.BoolVar(&c.noCache, "no-cache", false, "do not read or write the image cache")
	pf.BoolVar(&c.debug, "debug", false, "start with the debug overlay shown")

	root.AddCommand(c.viewCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// settings loads the config file and applies flag overrides
func (c *CLI) settings(cmd *cobra.Command) (config.Resolved, error) {
	r, err := config.Load(c.configPath)
	if err != nil {
		return r, err
	}

	flags := cmd.Flags()
	if flags.Changed("catalog") {
		r.Catalog.Path = c.catalogPath
	}
	if flags.Changed("limit") {
		r.Catalog.Limit = c.limit
	}
	if flags.Changed("width") {
		r.Wall.ScreenWidth = c.width
	}
	if flags.Changed("height") {
		r.Wall.ScreenHeight = c.height
	}
	if flags.Changed("no-cache") {
		r.Loader.NoCache = c.noCache
	}
	if flags.Changed("debug") {
		r.Wall.ShowDebug = c.debug
	}

	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}
