package cli

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"imagewall/catalog"
	"imagewall/loader"
	"imagewall/wall"
)

func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Open the image wall in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := loggerFromContext(ctx)

			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			descs, err := catalog.Load(cfg.Catalog)
			if err != nil {
				return err
			}
			ld, err := loader.New(cfg.Loader, log)
			if err != nil {
				return err
			}

			w, err := wall.New(wall.Options{
				Config:      cfg.Wall,
				Descriptors: descs,
				Loader:      ld,
				OnReady: func() {
					log.Info("wall ready", "images", len(descs))
				},
				Logger: log,
			})
			if err != nil {
				return err
			}
			defer w.Destroy()

			ebiten.SetWindowSize(cfg.Wall.ScreenWidth, cfg.Wall.ScreenHeight)
			ebiten.SetWindowTitle(appName)

			if err := ebiten.RunGame(&session{Wall: w, ctx: ctx}); err != nil {
				return fmt.Errorf("failed to run wall: %w", err)
			}
			return ctx.Err()
		},
	}
}

// session ends the wall when the command context is cancelled
type session struct {
	*wall.Wall
	ctx context.Context
}

func (s *session) Update() error {
	if s.ctx.Err() != nil {
		s.Destroy()
	}
	return s.Wall.Update()
}
