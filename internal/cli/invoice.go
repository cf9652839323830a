package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

func newInvoiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoice",
		Aliases: []string{"invoices", "inv"},
		Short:   "Manage invoices",
	}

	cmd.AddCommand(newInvoiceListCmd())
	cmd.AddCommand(newInvoiceGetCmd())
	cmd.AddCommand(newInvoiceStatusCmd())
	cmd.AddCommand(newInvoiceExportCSVCmd())
	cmd.AddCommand(newInvoicePDFCmd())

	return cmd
}

func newInvoiceListCmd() *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			invoices, err := apiClient.Invoices().List(context.Background(), &client.InvoiceListOptions{
				Status: status,
				Search: search,
			})
			if err != nil {
				return fmt.Errorf("failed to list invoices: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(invoices)
			}

			if len(invoices) == 0 {
				fmt.Println("No invoices found")
				return nil
			}

			table := NewTable("ID", "NUMBER", "CLIENT", "AMOUNT", "DUE", "STATUS")
			for _, inv := range invoices {
				table.AddRow(
					strconv.FormatInt(inv.ID, 10),
					inv.InvoiceNumber,
					truncate(inv.ClientName, 30),
					formatMoney(inv.Amount),
					inv.DueDate,
					formatStatus(inv.Status),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (draft, sent, paid, overdue)")
	cmd.Flags().StringVar(&search, "search", "", "match client name, email or invoice number")

	return cmd
}

func newInvoiceGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show invoice details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			inv, err := apiClient.Invoices().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get invoice: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(inv)
			}

			fmt.Printf("Invoice:  %s\n", inv.InvoiceNumber)
			fmt.Printf("Client:   %s <%s>\n", inv.ClientName, inv.ClientEmail)
			fmt.Printf("Status:   %s\n", formatStatus(inv.Status))
			if inv.DueDate != "" {
				fmt.Printf("Due:      %s\n", inv.DueDate)
			}
			fmt.Println()

			table := NewTable("DESCRIPTION", "QTY", "RATE", "AMOUNT")
			for _, item := range inv.Items {
				table.AddRow(truncate(item.Description, 40), strconv.Itoa(item.Quantity), formatMoney(item.Rate), formatMoney(item.Amount))
			}
			table.Render()

			fmt.Println()
			fmt.Printf("Tax (%s%%): %s\n", inv.TaxRate.String(), formatMoney(inv.TaxAmount))
			fmt.Printf("Total:     %s\n", formatMoney(inv.Amount))
			return nil
		},
	}
}

func newInvoiceStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <draft|sent|paid|overdue>",
		Short: "Change an invoice status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := apiClient.Invoices().UpdateStatus(context.Background(), id, args[1]); err != nil {
				return fmt.Errorf("failed to update invoice: %w", err)
			}
			fmt.Printf("Invoice %d marked %s\n", id, args[1])
			return nil
		},
	}
}

func newInvoiceExportCSVCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export-csv",
		Short: "Download all invoices as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := apiClient.Invoices().ExportCSV(context.Background())
			if err != nil {
				return fmt.Errorf("failed to export invoices: %w", err)
			}
			path, err := saveFile(out, file)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "f", "", "output path (default: server-provided filename)")

	return cmd
}

func newInvoicePDFCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf <id>",
		Short: "Download an invoice as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			file, err := apiClient.Invoices().PDF(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to export invoice: %w", err)
			}
			path, err := saveFile(out, file)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			if file.ArchiveKey != "" {
				fmt.Printf("Archived as %s\n", file.ArchiveKey)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "f", "", "output path (default: server-provided filename)")

	return cmd
}

// saveFile writes a download to path, or to its own filename in the working directory
func saveFile(path string, f *client.File) (string, error) {
	if path == "" {
		path = filepath.Base(f.Filename)
		if path == "." || path == string(filepath.Separator) || path == "" {
			path = "download"
		}
	}
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
