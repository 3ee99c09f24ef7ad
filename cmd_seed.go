package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add a set of sample tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if n := a.engine.Len(); n > 0 && !force {
				fmt.Fprintf(a.stdout, "The list already has %d tasks. Add the samples anyway? (y/N): ", n)
				response, _ := bufio.NewReader(a.stdin).ReadString('\n')
				response = strings.TrimSpace(response)
				if response != "y" && response != "Y" {
					fmt.Fprintln(a.stdout, "Cancelled.")
					return nil
				}
			}

			added := SeedTasks(a.engine, a.engine.Now())
			if err := a.saved(); err != nil {
				return fmt.Errorf("failed to save tasks: %w", err)
			}

			fmt.Fprintf(a.stdout, "✓ Added %d sample tasks\n", added)
			fmt.Fprintf(a.stdout, "  Total tasks: %d\n", a.engine.Len())
			fmt.Fprintf(a.stdout, "  Tags: %d\n", len(a.engine.Colors()))
			fmt.Fprintln(a.stdout, "\nRun 'todobi' to view your tasks!")
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "skip the confirmation prompt")
	return cmd
}
