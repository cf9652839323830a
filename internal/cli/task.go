package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratik-mahalle/bizdesk/pkg/client"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}

	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskDoneCmd())

	return cmd
}

func newTaskListCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := apiClient.Tasks().List(context.Background(), status)
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(tasks)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found")
				return nil
			}

			table := NewTable("ID", "TITLE", "PRIORITY", "ASSIGNEE", "DUE", "STATUS")
			for _, t := range tasks {
				table.AddRow(
					strconv.FormatInt(t.ID, 10),
					truncate(t.Title, 40),
					t.Priority,
					t.Assignee,
					t.DueDate,
					formatStatus(t.Status),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending, in-progress, completed)")

	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var t client.Task

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				t.Title = strings.Join(args, " ")
			}
			if t.Title == "" {
				t.Title = promptInput("Title: ")
			}

			created, err := apiClient.Tasks().Create(context.Background(), t)
			if err != nil {
				return fmt.Errorf("failed to add task: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(created)
			}
			fmt.Printf("Task %d added: %s\n", created.ID, created.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&t.Description, "description", "", "details")
	cmd.Flags().StringVar(&t.Priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&t.Assignee, "assignee", "", "who owns the task")
	cmd.Flags().StringVar(&t.DueDate, "due", "", "due date (YYYY-MM-DD)")

	return cmd
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			t, err := apiClient.Tasks().UpdateStatus(context.Background(), id, "completed")
			if err != nil {
				return fmt.Errorf("failed to complete task: %w", err)
			}
			fmt.Printf("Task %d completed: %s\n", t.ID, t.Title)
			return nil
		},
	}
}
