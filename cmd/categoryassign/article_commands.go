package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"categoryassign/internal/content"
)

func newArticleCommand(ctx *commandContext) *cobra.Command {
	articleCmd := &cobra.Command{
		Use:   "article",
		Short: "Manage articles and run workflow transitions",
	}

	articleCmd.AddCommand(newArticleAddCommand(ctx))
	articleCmd.AddCommand(newArticleListCommand(ctx))
	articleCmd.AddCommand(newArticleShowCommand(ctx))
	articleCmd.AddCommand(newArticleTransitionsCommand(ctx))
	articleCmd.AddCommand(newArticleTransitionCommand(ctx))

	return articleCmd
}

func newArticleAddCommand(ctx *commandContext) *cobra.Command {
	var category, stage string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			article := content.Article{Title: args[0], State: content.StatePublished}
			if strings.TrimSpace(category) != "" {
				cat, err := resolveCategory(cmd.Context(), rt.store, category)
				if err != nil {
					return err
				}
				article.CatID = cat.ID
			}
			if strings.TrimSpace(stage) != "" {
				st, err := resolveStage(cmd.Context(), rt.store, stage)
				if err != nil {
					return err
				}
				article.StageID = st.ID
			}
			created, err := rt.store.CreateArticle(cmd.Context(), article)
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created article %d in category %d\n", created.ID, created.CatID)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Category id or alias (defaults to Uncategorised)")
	cmd.Flags().StringVar(&stage, "stage", "", "Stage id or title (defaults to the default stage)")
	return cmd
}

func newArticleListCommand(ctx *commandContext) *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			var stageID int64
			if strings.TrimSpace(stage) != "" {
				st, err := resolveStage(cmd.Context(), rt.store, stage)
				if err != nil {
					return err
				}
				stageID = st.ID
			}
			articles, err := rt.store.ListArticles(cmd.Context(), stageID)
			if err != nil {
				return err
			}
			titles, err := stageTitles(cmd.Context(), rt.store)
			if err != nil {
				return err
			}
			return writeList(cmd, ctx.jsonOutput, articles, "No articles",
				[]column{idColumn("ID"), textColumn("Title"), idColumn("Category"), textColumn("Stage")},
				func(article *content.Article) []string {
					return []string{
						strconv.FormatInt(article.ID, 10),
						article.Title,
						strconv.FormatInt(article.CatID, 10),
						stageLabel(titles, article.StageID),
					}
				},
			)
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", "Only list articles in this stage (id or title)")
	return cmd
}

func newArticleShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			article, err := rt.store.GetArticle(cmd.Context(), id)
			if err != nil {
				return err
			}
			if article == nil {
				return notFound("article", args[0])
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, article)
			}
			category := strconv.FormatInt(article.CatID, 10)
			if cat, err := rt.store.GetCategory(cmd.Context(), article.CatID); err == nil && cat != nil {
				category = fmt.Sprintf("%s (%d)", cat.Title, cat.ID)
			}
			titles, err := stageTitles(cmd.Context(), rt.store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Article %d: %s\n", article.ID, article.Title)
			fmt.Fprintf(out, "  Alias:    %s\n", article.Alias)
			fmt.Fprintf(out, "  Category: %s\n", category)
			fmt.Fprintf(out, "  Stage:    %s\n", stageLabel(titles, article.StageID))
			fmt.Fprintf(out, "  Modified: %s\n", article.ModifiedAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func newArticleTransitionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <id>",
		Short: "List the transitions an article may take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			transitions, err := rt.manager.AvailableTransitions(cmd.Context(), id)
			if err != nil {
				return err
			}
			return writeTransitions(cmd, ctx.jsonOutput, rt.store, transitions, "No transitions available")
		},
	}
}

func newArticleTransitionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "transition <id> <transition>",
		Short: "Run a workflow transition on an article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			id, err := parseID("article", args[0])
			if err != nil {
				return err
			}
			tr, err := resolveTransition(cmd.Context(), rt.store, args[1])
			if err != nil {
				return err
			}
			result, err := rt.manager.RunTransition(cmd.Context(), id, tr.ID)
			if err != nil {
				return fmt.Errorf("transition %s: %w", tr.Title, err)
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Article %d moved via %s\n", result.Article.ID, result.Transition.Title)
			if result.CategoryChanged() {
				fmt.Fprintf(out, "Category changed: %d -> %d\n", result.PreviousCategoryID, result.Article.CatID)
			} else {
				fmt.Fprintf(out, "Category unchanged: %d\n", result.Article.CatID)
			}
			return nil
		},
	}
}
