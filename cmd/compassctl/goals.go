package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	goalsCmd := &cobra.Command{Use: "goals", Short: "Goal operations"}

	var title, description, category, target string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a goal",
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
			if category != "" {
				payload["category"] = category
			}
			if target != "" {
				payload["targetDate"] = target
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users/%s/goals", apiFlag, userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Goal title (required)")
	createCmd.Flags().StringVarP(&description, "description", "d", "", "Goal description")
	createCmd.Flags().StringVarP(&category, "category", "c", "", "Goal category")
	createCmd.Flags().StringVar(&target, "target", "", "Target date (RFC 3339)")
	_ = createCmd.MarkFlagRequired("title")
	goalsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/goals", apiFlag, userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	goalsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get GOAL_ID",
		Short: "Get goal by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/goals/%s", apiFlag, userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	goalsCmd.AddCommand(getCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete GOAL_ID",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if err := doDelete(fmt.Sprintf("%s/api/users/%s/goals/%s", apiFlag, userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	goalsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(goalsCmd)
}
