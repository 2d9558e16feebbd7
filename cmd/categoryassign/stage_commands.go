package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"categoryassign/internal/content"
)

func newStageCommand(ctx *commandContext) *cobra.Command {
	stageCmd := &cobra.Command{
		Use:   "stage",
		Short: "Manage workflow stages",
	}

	stageCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workflow stages",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			stages, err := rt.store.ListStages(cmd.Context())
			if err != nil {
				return err
			}
			return writeList(cmd, ctx.jsonOutput, stages, "No stages",
				[]column{idColumn("ID"), textColumn("Title"), textColumn("Default"), textColumn("Description")},
				func(stage *content.Stage) []string {
					return []string{strconv.FormatInt(stage.ID, 10), stage.Title, yesNo(stage.Default), stage.Description}
				},
			)
		},
	})

	var description string
	var isDefault bool
	var ordering int
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a workflow stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			stage, err := rt.store.CreateStage(cmd.Context(), content.Stage{
				Title:       args[0],
				Description: description,
				Default:     isDefault,
				Ordering:    ordering,
			})
			if err != nil {
				return err
			}
			if ctx.jsonOutput {
				return writeJSON(cmd, stage)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created stage %d (%s)\n", stage.ID, stage.Title)
			return nil
		},
	}
	addCmd.Flags().StringVar(&description, "description", "", "Stage description")
	addCmd.Flags().BoolVar(&isDefault, "default", false, "Place new articles in this stage")
	addCmd.Flags().IntVar(&ordering, "ordering", 0, "Sort position")
	stageCmd.AddCommand(addCmd)

	return stageCmd
}
