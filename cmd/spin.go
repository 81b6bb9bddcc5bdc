// File: cmd/spin.go
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/observability"
	"github.com/xkilldash9x/spinview/internal/tui"
)

const spinCommandName = "spin"

// newScreen is swapped in tests for a simulation screen.
var newScreen = tcell.NewScreen

func newSpinCmd() *cobra.Command {
	spinCmd := &cobra.Command{
		Use:   spinCommandName,
		Short: "Open the listing page in the terminal",
		Long: `Renders the listing with its photo gallery and 360° view. Press v to switch
to the 360° view; once every frame has loaded, click or press space to activate
it and drag horizontally to rotate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			defer observability.Sync()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			page, err := newListingPage(cfg, newFrameFetcher(cfg, logger), logger)
			if err != nil {
				return fmt.Errorf("failed to build listing page: %w", err)
			}
			defer page.Close()

			screen, err := newScreen()
			if err != nil {
				return fmt.Errorf("failed to create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("failed to initialize screen: %w", err)
			}
			defer screen.Fini()

			logger.Info("Opening listing", zap.String("model", cfg.Listing().Model), zap.Int("frames", len(cfg.Listing().Frames)))
			if err := tui.New(screen, page, logger).Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					logger.Info("Interrupted")
				}
				return err
			}
			return nil
		},
	}

	spinCmd.Flags().Int("tolerance", 2, "frames either side of its anchor a hotspot stays visible while rotating")
	spinCmd.Flags().Int("concurrency", 6, "maximum frame downloads in flight")
	spinCmd.Flags().StringSlice("frames", nil, "frame locators, overriding the configured listing")
	spinCmd.Flags().String("base-dir", "", "directory relative frame paths are resolved against")
	return spinCmd
}
