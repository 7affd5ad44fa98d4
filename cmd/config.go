package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/biocore/biocore-cli/pkg/config"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the persisted webhook URL",
	}
	cmd.AddCommand(newConfigSetURLCmd(), newConfigGetURLCmd())
	return cmd
}

func newConfigSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url URL",
		Short: "Persist the BioCore webhook URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			if err := store.Save(args[0]); err != nil {
				return err
			}
			printSuccess("Webhook URL saved")
			return nil
		},
	}
}

func newConfigGetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-url",
		Short: "Print the persisted BioCore webhook URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}
			url, found, err := store.Load()
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("webhook URL not set (use 'biocore config set-url')")
			}
			fmt.Println(url)
			return nil
		},
	}
}

// openStore resolves the config file path, honoring BIOCORE_CONFIG_FILE
// for tests and unusual setups.
func openStore() (*config.Store, error) {
	if path := os.Getenv("BIOCORE_CONFIG_FILE"); path != "" {
		return config.NewStore(path), nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.NewStore(path), nil
}
