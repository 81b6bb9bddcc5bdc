// File: cmd/preload.go
package cmd

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/spinview/internal/observability"
	"github.com/xkilldash9x/spinview/internal/preload"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// frameReport is one row of the preload report.
type frameReport struct {
	Index   int                `json:"index"`
	Locator string             `json:"locator"`
	Status  string             `json:"status"`
	Info    *preload.FrameInfo `json:"info,omitempty"`
	Error   string             `json:"error,omitempty"`
}

type preloadReport struct {
	Summary preload.Summary `json:"summary"`
	Frames  []frameReport   `json:"frames"`
}

// errorCollector keeps the failure message the tracker discards.
type errorCollector struct {
	*preload.Tracker

	mu   sync.Mutex
	errs map[int]string
}

func (c *errorCollector) ReportFrame(generation string, index int, info *preload.FrameInfo, err error) bool {
	if !c.Tracker.ReportFrame(generation, index, info, err) {
		return false
	}
	if err != nil {
		c.mu.Lock()
		c.errs[index] = err.Error()
		c.mu.Unlock()
	}
	return true
}

func newPreloadCmd() *cobra.Command {
	var asJSON bool

	preloadCmd := &cobra.Command{
		Use:   "preload [locators...]",
		Short: "Fetch every frame of a 360° sequence and report what loaded",
		Long: `Fetches each frame once, the same way the viewer does before it can be
activated, and prints per-frame status, format and dimensions. Locators given as
arguments replace the configured listing frames. Exits non-zero if any frame
failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()
			defer observability.Sync()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}

			frames := cfg.Listing().Frames
			if len(args) > 0 {
				frames = args
			}

			generation := uuid.NewString()
			collector := &errorCollector{
				Tracker: preload.NewTracker(generation, len(frames)),
				errs:    make(map[int]string),
			}

			preloader := newPreloader(cfg, newFrameFetcher(cfg, logger), logger)
			logger.Info("Preloading frames", zap.String("generation", generation), zap.Int("frames", len(frames)))
			summary := preloader.Run(ctx, generation, frames, collector)

			report := preloadReport{Summary: summary, Frames: make([]frameReport, len(frames))}
			for i, locator := range frames {
				report.Frames[i] = frameReport{
					Index:   i,
					Status:  collector.Status(i).String(),
					Info:    collector.Info(i),
					Error:   collector.errs[i],
					Locator: locator,
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
			} else if err := writePreloadTable(out, report); err != nil {
				return err
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d frames failed to load", summary.Failed, summary.Total)
			}
			return nil
		},
	}

	preloadCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	preloadCmd.Flags().Int("concurrency", 6, "maximum frame downloads in flight")
	preloadCmd.Flags().Duration("timeout", 0, "per-frame fetch timeout (0 waits indefinitely)")
	preloadCmd.Flags().Float64("rate", 0, "maximum fetches started per second (0 is unlimited)")
	preloadCmd.Flags().String("base-dir", "", "directory relative frame paths are resolved against")
	return preloadCmd
}

func writePreloadTable(out io.Writer, report preloadReport) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tSTATUS\tFORMAT\tSIZE\tBYTES\tCAMERA\tLOCATOR")
	for _, f := range report.Frames {
		format, size, bytes, camera := "-", "-", "-", "-"
		if f.Info != nil {
			if f.Info.Format != "" {
				format = f.Info.Format
				size = fmt.Sprintf("%dx%d", f.Info.Width, f.Info.Height)
			}
			bytes = fmt.Sprintf("%d", f.Info.Bytes)
			if f.Info.CameraModel != "" {
				camera = f.Info.CameraModel
			}
		}
		status := f.Status
		if f.Error != "" {
			status += ": " + f.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", f.Index, status, format, size, bytes, camera, f.Locator)
	}
	s := report.Summary
	fmt.Fprintf(tw, "\n%d loaded, %d failed of %d in %s\n", s.Loaded, s.Failed, s.Total, s.Duration.Round(time.Millisecond))
	return tw.Flush()
}
