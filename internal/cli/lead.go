package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

func newLeadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lead",
		Aliases: []string{"leads"},
		Short:   "Manage leads",
	}

	cmd.AddCommand(newLeadListCmd())
	cmd.AddCommand(newLeadAddCmd())

	return cmd
}

func newLeadListCmd() *cobra.Command {
	var status, source, search string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Leads().List(context.Background(), &client.LeadListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Status:      status,
				Source:      source,
				Search:      search,
			})
			if err != nil {
				return fmt.Errorf("failed to list leads: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			if len(result.Data) == 0 {
				fmt.Println("No leads found")
				return nil
			}

			table := NewTable("ID", "NAME", "EMAIL", "COMPANY", "SOURCE", "STATUS")
			for _, l := range result.Data {
				table.AddRow(
					strconv.FormatInt(l.ID, 10),
					truncate(l.Name, 25),
					truncate(l.Email, 30),
					truncate(l.Company, 20),
					l.Source,
					formatStatus(l.Status),
				)
			}
			table.Render()
			fmt.Printf("\nPage %d of %d (%d leads)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (new, contacted, qualified, converted, lost)")
	cmd.Flags().StringVar(&source, "source", "", "filter by source")
	cmd.Flags().StringVar(&search, "search", "", "match name, email or company")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "leads per page")

	return cmd
}

func newLeadAddCmd() *cobra.Command {
	var l client.Lead

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a lead",
		RunE: func(cmd *cobra.Command, args []string) error {
			if l.Name == "" {
				l.Name = promptInput("Name: ")
			}
			if l.Email == "" {
				l.Email = promptInput("Email: ")
			}

			created, err := apiClient.Leads().Create(context.Background(), l)
			if err != nil {
				return fmt.Errorf("failed to add lead: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(created)
			}
			fmt.Printf("Lead %d added: %s <%s>\n", created.ID, created.Name, created.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&l.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&l.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&l.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&l.Company, "company", "", "company")
	cmd.Flags().StringVar(&l.Source, "source", "", "where the lead came from")
	cmd.Flags().StringVar(&l.Notes, "notes", "", "free-form notes")

	return cmd
}
