package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
		Annotations: map[string]string{
			skipEngine: "true",
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			skipEngine: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := WriteConfig(path, DefaultConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(a.stdout, "✓ Created config file: %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipEngine: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "config file: %s\n", a.v.ConfigFileUsed())
			fmt.Fprintf(a.stdout, "store.kind:  %s\n", a.cfg.Store.Kind)
			fmt.Fprintf(a.stdout, "store.path:  %s\n", a.cfg.Store.Path)
			fmt.Fprintf(a.stdout, "log.level:   %s\n", a.cfg.Log.Level)
			fmt.Fprintf(a.stdout, "log.format:  %s\n", a.cfg.Log.Format)
			fmt.Fprintf(a.stdout, "log.file:    %s\n", a.cfg.Log.File)
			fmt.Fprintf(a.stdout, "timezone:    %s\n", a.cfg.Timezone)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
