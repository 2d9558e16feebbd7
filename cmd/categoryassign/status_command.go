package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"categoryassign/internal/categoryassign"
	"categoryassign/internal/store"
)

type statusReport struct {
	ConfigPath         string      `json:"config_path"`
	ConfigExists       bool        `json:"config_exists"`
	DatabasePath       string      `json:"database_path"`
	Stats              store.Stats `json:"stats"`
	AutomationEnabled  bool        `json:"automation_enabled"`
	FallbackCategoryID int64       `json:"fallback_category_id"`
	FragmentPath       string      `json:"fragment_path"`
	FragmentInstalled  bool        `json:"fragment_installed"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store contents and automation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			stats, err := rt.store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fragment := filepath.Join(ctx.config.Paths.FormsDir, categoryassign.FragmentFile)
			_, statErr := os.Stat(fragment)
			if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
				return fmt.Errorf("stat fragment: %w", statErr)
			}

			report := statusReport{
				ConfigPath:         ctx.configPath,
				ConfigExists:       ctx.configExists,
				DatabasePath:       rt.store.Path(),
				Stats:              stats,
				AutomationEnabled:  rt.plugin.Enabled(categoryassign.ArticleContext),
				FallbackCategoryID: rt.plugin.FallbackCategoryID(),
				FragmentPath:       fragment,
				FragmentInstalled:  statErr == nil,
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderStatus(report, shouldColorize(cmd.OutOrStdout())))
			return nil
		},
	}
}
