// File: cmd/estimate.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/spinview/internal/pricing"
)

func newEstimateCmd() *cobra.Command {
	estimateCmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the event price estimate",
		Long:  "Computes invites x months x base rate. Values outside the configured ranges are clamped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := getConfigFromContext(cmd.Context())
			if err != nil {
				return err
			}

			p := cfg.Pricing()
			est := pricing.NewEstimator(pricingConfig(p))
			// Flags may ask for values outside the range; clamp rather than reject.
			if cmd.Flags().Changed("invites") {
				n, _ := cmd.Flags().GetInt("invites")
				est.SetInvites(n)
			}
			if cmd.Flags().Changed("months") {
				n, _ := cmd.Flags().GetInt("months")
				est.SetMonths(n)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Invites:  %d (%d-%d)\n", est.Invites(), p.Invites.Min, p.Invites.Max)
			fmt.Fprintf(out, "Duration: %d months (%d-%d)\n", est.Months(), p.Months.Min, p.Months.Max)
			fmt.Fprintf(out, "Estimate: %s\n", est.FormatTotal())
			return nil
		},
	}

	estimateCmd.Flags().Int("invites", 50, "number of invites")
	estimateCmd.Flags().Int("months", 12, "duration in months")
	return estimateCmd
}
