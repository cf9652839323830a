package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tier",
		Aliases: []string{"plan"},
		Short:   "Show plan and usage",
	}

	cmd.AddCommand(newTierShowCmd())
	cmd.AddCommand(newTierPlansCmd())

	return cmd
}

func newTierShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your plan and this month's usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := apiClient.Tier().Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get plan status: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(st)
			}

			fmt.Printf("Plan:   %s\n", st.Tier.Name)
			fmt.Printf("Period: %s\n\n", st.Period)

			table := NewTable("FEATURE", "USED", "LIMIT", "AVAILABLE")
			for _, f := range st.Features {
				limit := strconv.FormatInt(f.Limit, 10)
				if f.Unlimited {
					limit = "unlimited"
				}
				available := "yes"
				if !f.Allowed {
					available = "no (upgrade)"
				}
				table.AddRow(f.Feature, strconv.FormatInt(f.Used, 10), limit, available)
			}
			table.Render()
			return nil
		},
	}
}

func newTierPlansCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List available plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Tier().Plans(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("PLAN", "PRICE", "HIGHLIGHTS")
			for _, p := range plans {
				table.AddRow(p.Name, fmt.Sprintf("$%d.%02d/mo", p.PriceCents/100, p.PriceCents%100), strings.Join(p.Highlights, "; "))
			}
			table.Render()
			return nil
		},
	}
}
