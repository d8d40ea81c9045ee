package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	tasksCmd := &cobra.Command{Use: "tasks", Short: "Task operations"}

	var title, description, due, priority, goalID string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if title == "" {
				return fmt.Errorf("--title required")
			}
			payload := map[string]interface{}{"title": title}
			if description != "" {
				payload["description"] = description
			}
			if due != "" {
				payload["dueDate"] = due
			}
			if priority != "" {
				payload["priority"] = priority
			}
			if goalID != "" {
				payload["goalId"] = goalID
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users/%s/tasks", apiFlag, userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Task title (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	createCmd.Flags().StringVar(&due, "due", "", "Due date (RFC 3339)")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low, medium, high)")
	createCmd.Flags().StringVarP(&goalID, "goal", "g", "", "Linked goal ID")
	_ = createCmd.MarkFlagRequired("title")
	tasksCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/tasks", apiFlag, userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	tasksCmd.AddCommand(listCmd)

	completeCmd := &cobra.Command{
		Use:   "complete TASK_ID",
		Short: "Mark a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			url := fmt.Sprintf("%s/api/users/%s/tasks/%s", apiFlag, userFlag, args[0])
			data, err := doGet(url)
			if err != nil {
				return err
			}
			var task map[string]interface{}
			if err := json.Unmarshal(data, &task); err != nil {
				return err
			}
			task["completed"] = true
			out, err := doPutJSON(url, task)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(out))
			return nil
		},
	}
	tasksCmd.AddCommand(completeCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete TASK_ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if err := doDelete(fmt.Sprintf("%s/api/users/%s/tasks/%s", apiFlag, userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	tasksCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(tasksCmd)
}
