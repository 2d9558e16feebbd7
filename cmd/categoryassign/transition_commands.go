package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"categoryassign/internal/content"
	"categoryassign/internal/store"
)

func newTransitionCommand(ctx *commandContext) *cobra.Command {
	transitionCmd := &cobra.Command{
		Use:   "transition",
		Short: "Manage workflow transitions",
	}

	transitionCmd.AddCommand(newTransitionListCommand(ctx))
	transitionCmd.AddCommand(newTransitionAddCommand(ctx))
	transitionCmd.AddCommand(newTransitionSetCategoryCommand(ctx))

	return transitionCmd
}

func newTransitionListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workflow transitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			transitions, err := rt.store.ListTransitions(cmd.Context())
			if err != nil {
				return err
			}
			return writeTransitions(cmd, ctx.jsonOutput, rt.store, transitions, "No transitions")
		},
	}
}

func writeTransitions(cmd *cobra.Command, asJSON bool, st *store.Store, transitions []*content.Transition, empty string) error {
	titles, err := stageTitles(cmd.Context(), st)
	if err != nil {
		return err
	}
	return writeList(cmd, asJSON, transitions, empty,
		[]column{
			idColumn("ID"), textColumn("Title"), textColumn("From"), textColumn("To"),
			idColumn("Category"), textColumn("Published"),
		},
		func(tr *content.Transition) []string {
			return []string{
				strconv.FormatInt(tr.ID, 10),
				tr.Title,
				stageLabel(titles, tr.FromStageID),
				stageLabel(titles, tr.ToStageID),
				transitionCategory(tr),
				yesNo(tr.Published),
			}
		},
	)
}

func newTransitionAddCommand(ctx *commandContext) *cobra.Command {
	var (
		from        string
		to          string
		category    string
		description string
		disabled    bool
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a workflow transition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			fromID, err := transitionSource(cmd.Context(), rt.store, from)
			if err != nil {
				return err
			}
			target, err := resolveStage(cmd.Context(), rt.store, to)
			if err != nil {
				return err
			}
			var categoryID int64
			if strings.TrimSpace(category) != "" {
				cat, err := resolveCategory(cmd.Context(), rt.store, category)
				if err != nil {
					return err
				}
				categoryID = cat.ID
			}

			tr, err := rt.store.CreateTransition(cmd.Context(), content.Transition{
				Title:       args[0],
				Description: description,
				FromStageID: fromID,
				ToStageID:   target.ID,
				Published:   !disabled,
			})
			if err != nil {
				return err
			}
			if categoryID != 0 {
				if tr, err = rt.manager.SetTransitionCategory(cmd.Context(), tr.ID, categoryID); err != nil {
					return err
				}
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, tr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created transition %d (%s)\n", tr.ID, tr.Title)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "*", "Source stage id or title (* for any stage)")
	cmd.Flags().StringVar(&to, "to", "", "Target stage id or title")
	cmd.Flags().StringVar(&category, "category", "", "Category id or alias assigned by the transition")
	cmd.Flags().StringVar(&description, "description", "", "Transition description")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "Create the transition unpublished")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func transitionSource(ctx context.Context, st *store.Store, ref string) (int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "*" {
		return content.AnyStage, nil
	}
	stage, err := resolveStage(ctx, st, ref)
	if err != nil {
		return 0, err
	}
	return stage.ID, nil
}

func newTransitionSetCategoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-category <transition> <category|none>",
		Short: "Set or clear the category a transition assigns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			tr, err := resolveTransition(cmd.Context(), rt.store, args[0])
			if err != nil {
				return err
			}
			var categoryID int64
			if ref := strings.ToLower(strings.TrimSpace(args[1])); ref != "none" && ref != "0" {
				cat, err := resolveCategory(cmd.Context(), rt.store, args[1])
				if err != nil {
					return err
				}
				categoryID = cat.ID
			}
			updated, err := rt.manager.SetTransitionCategory(cmd.Context(), tr.ID, categoryID)
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, updated)
			}
			if categoryID == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Transition %s keeps the current category\n", updated.Title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transition %s assigns category %d\n", updated.Title, categoryID)
			return nil
		},
	}
}
