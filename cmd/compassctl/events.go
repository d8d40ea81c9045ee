package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	eventsCmd := &cobra.Command{Use: "events", Short: "Calendar event operations"}

	var title, location, start, end string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a calendar event",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if title == "" || start == "" {
				return fmt.Errorf("--title and --start required")
			}
			payload := map[string]interface{}{"title": title, "startTime": start}
			if location != "" {
				payload["location"] = location
			}
			if end != "" {
				payload["endTime"] = end
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users/%s/events", apiFlag, userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Event title (required)")
	createCmd.Flags().StringVarP(&location, "location", "l", "", "Event location")
	createCmd.Flags().StringVar(&start, "start", "", "Start time, RFC 3339 (required)")
	createCmd.Flags().StringVar(&end, "end", "", "End time, RFC 3339 (defaults to start plus one hour)")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("start")
	eventsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/events", apiFlag, userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	eventsCmd.AddCommand(listCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete EVENT_ID",
		Short: "Delete a calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if err := doDelete(fmt.Sprintf("%s/api/users/%s/events/%s", apiFlag, userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	eventsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(eventsCmd)
}
