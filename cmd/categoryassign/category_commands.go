package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"categoryassign/internal/config"
	"categoryassign/internal/content"
)

func newCategoryCommand(ctx *commandContext) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage article categories",
	}

	categoryCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List article categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			categories, err := rt.store.ListCategories(cmd.Context(), config.ArticlesComponent)
			if err != nil {
				return err
			}
			return writeList(cmd, ctx.jsonOutput, categories, "No categories",
				[]column{idColumn("ID"), textColumn("Title"), textColumn("Alias"), textColumn("Published")},
				func(cat *content.Category) []string {
					return []string{strconv.FormatInt(cat.ID, 10), cat.Title, cat.Alias, yesNo(cat.Published)}
				},
			)
		},
	})

	var alias string
	var unpublished bool
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an article category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			cat, err := rt.store.CreateCategory(cmd.Context(), content.Category{
				Title:     args[0],
				Alias:     alias,
				Extension: config.ArticlesComponent,
				Published: !unpublished,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, cat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d (%s)\n", cat.ID, cat.Alias)
			return nil
		},
	}
	addCmd.Flags().StringVar(&alias, "alias", "", "URL alias (derived from the title when empty)")
	addCmd.Flags().BoolVar(&unpublished, "unpublished", false, "Create the category unpublished")
	categoryCmd.AddCommand(addCmd)

	return categoryCmd
}
