package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	rootCmd  = &cobra.Command{
		Use:   "compassctl",
		Short: "CLI client for the Compass assistant REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Assistant service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID (required)")

	// chat subcommand
	var threadFlag string
	chatCmd := &cobra.Command{
		Use:   "chat MESSAGE",
		Short: "Send a natural-language message to the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			payload := map[string]interface{}{"message": args[0]}
			if threadFlag != "" {
				payload["threadId"] = threadFlag
			}
			data, err := doPostJSON(fmt.Sprintf("%s/api/users/%s/ai/chat", apiFlag, userFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	chatCmd.Flags().StringVarP(&threadFlag, "thread", "t", "", "Thread ID to persist the exchange into")
	rootCmd.AddCommand(chatCmd)

	// suggestions subcommand
	suggestCmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Fetch goal suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("%s/api/users/%s/ai/suggestions", apiFlag, userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(suggestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireUser() error {
	if userFlag == "" {
		return fmt.Errorf("--user required")
	}
	return nil
}
