package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	threadsCmd := &cobra.Command{Use: "threads", Short: "Conversation thread operations"}

	var title string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a conversation thread",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			payload := map[string]interface{}{}
			if title != "" {
				payload["title"] = title
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users/%s/threads", apiFlag, userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&title, "title", "t", "", "Thread title")
	threadsCmd.AddCommand(createCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List conversation threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/threads", apiFlag, userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	threadsCmd.AddCommand(listCmd)

	messagesCmd := &cobra.Command{
		Use:   "messages THREAD_ID",
		Short: "List messages in a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/threads/%s/messages", apiFlag, userFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	threadsCmd.AddCommand(messagesCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete THREAD_ID",
		Short: "Delete a thread and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if err := doDelete(fmt.Sprintf("%s/api/users/%s/threads/%s", apiFlag, userFlag, args[0])); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, "deleted")
			return nil
		},
	}
	threadsCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(threadsCmd)
}
