package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWorkflowCommand(ctx *commandContext) *cobra.Command {
	workflowCmd := &cobra.Command{
		Use:   "workflow",
		Short: "Workflow definition utilities",
	}

	workflowCmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Import categories, stages, and transitions from a YAML definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			summary, err := rt.manager.ImportDefinition(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, summary)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %s\n", args[0])
			fmt.Fprintf(out, "  Categories created:  %d\n", summary.CategoriesCreated)
			fmt.Fprintf(out, "  Stages created:      %d\n", summary.StagesCreated)
			fmt.Fprintf(out, "  Transitions created: %d\n", summary.TransitionsCreated)
			fmt.Fprintf(out, "  Transitions updated: %d\n", summary.TransitionsUpdated)
			return nil
		},
	})

	return workflowCmd
}
