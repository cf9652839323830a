package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show server health and, when logged in, the dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ready, err := apiClient.Ready(ctx)
			if err != nil {
				return fmt.Errorf("server not ready: %w", err)
			}

			if apiClient.GetToken() == "" {
				if getOutputFormat() != "table" {
					return printOutput(ready)
				}
				fmt.Printf("Server ready (mode=%s). Log in to see your dashboard.\n", ready["mode"])
				return nil
			}

			stats, err := apiClient.Stats(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dashboard: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(stats)
			}

			fmt.Println("Bizdesk Dashboard")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Revenue:       %s\n", formatMoney(stats.Revenue))
			fmt.Printf("  Invoices:      %d", stats.Invoices)
			if n := stats.InvoicesByState["overdue"]; n > 0 {
				fmt.Printf(" (%d overdue)", n)
			}
			fmt.Println()
			fmt.Printf("  Leads:         %d", stats.TotalLeads)
			if n := stats.LeadsByStatus["new"]; n > 0 {
				fmt.Printf(" (%d new)", n)
			}
			fmt.Println()
			fmt.Printf("  Tasks:         %d open, %d completed\n", stats.OpenTasks, stats.CompletedTasks)
			fmt.Printf("  Team members:  %d\n", stats.TeamMembers)
			return nil
		},
	}
}
