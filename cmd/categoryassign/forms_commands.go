package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"categoryassign/internal/categoryassign"
	"categoryassign/internal/form"
	"categoryassign/internal/registry"
	"categoryassign/internal/services"
)

func newFormsCommand(ctx *commandContext) *cobra.Command {
	formsCmd := &cobra.Command{
		Use:   "forms",
		Short: "Manage form fragments",
	}

	var force bool
	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install the transition editor fragment into the forms directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := categoryassign.InstallForms(cfg.Paths.FormsDir, force)
			if err != nil {
				if errors.Is(err, services.ErrConflict) {
					return fmt.Errorf("fragment already installed at %s (use --force to replace it)", path)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed transition fragment to %s\n", path)
			return nil
		},
	}
	installCmd.Flags().BoolVar(&force, "force", false, "Replace an existing fragment")
	formsCmd.AddCommand(installCmd)

	return formsCmd
}

type formFieldView struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Value    any    `json:"value"`
	Readonly bool   `json:"readonly"`
	Disabled bool   `json:"disabled"`
}

type formView struct {
	Name   string            `json:"name"`
	Fields []formFieldView   `json:"fields"`
	Data   registry.Registry `json:"data"`
}

func newFormCommand(ctx *commandContext) *cobra.Command {
	formCmd := &cobra.Command{
		Use:   "form",
		Short: "Inspect prepared editor forms",
	}

	showCmd := &cobra.Command{
		Use:   "show <article|transition> <id>",
		Short: "Prepare an editor form and print its fields",
		Long: "Prepare an editor form the way the editor would and print its fields.\n" +
			"An id of 0 prepares the form for a new item.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := ctx.ensureRuntime()
			if err != nil {
				return err
			}
			var f *form.Form
			switch strings.ToLower(strings.TrimSpace(args[0])) {
			case "article":
				id := int64(0)
				if strings.TrimSpace(args[1]) != "0" {
					if id, err = parseID("article", args[1]); err != nil {
						return err
					}
				}
				f, err = rt.manager.ArticleForm(cmd.Context(), id)
			case "transition":
				id := int64(0)
				if strings.TrimSpace(args[1]) != "0" {
					tr, resolveErr := resolveTransition(cmd.Context(), rt.store, args[1])
					if resolveErr != nil {
						return resolveErr
					}
					id = tr.ID
				}
				f, err = rt.manager.TransitionForm(cmd.Context(), id)
			default:
				return fmt.Errorf("unknown form %q (expected article or transition)", args[0])
			}
			if err != nil {
				return err
			}

			view := newFormView(f)
			if ctx.jsonOutput {
				return writeJSON(cmd, view)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form: %s\n", view.Name)
			fmt.Fprintln(cmd.OutOrStdout(), renderFormFields(view.Fields))
			return nil
		},
	}
	formCmd.AddCommand(showCmd)

	return formCmd
}

func newFormView(f *form.Form) formView {
	view := formView{Name: f.Name(), Data: f.Data()}
	for _, field := range f.Fields() {
		view.Fields = append(view.Fields, formFieldView{
			Key:      field.Key(),
			Type:     field.Type,
			Label:    field.Label,
			Value:    f.Value(field.Name, field.Group),
			Readonly: field.Readonly,
			Disabled: field.Disabled,
		})
	}
	return view
}

func renderFormFields(fields []formFieldView) string {
	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		var flags []string
		if field.Readonly {
			flags = append(flags, "readonly")
		}
		if field.Disabled {
			flags = append(flags, "disabled")
		}
		value := ""
		if field.Value != nil {
			value = fmt.Sprint(field.Value)
		}
		rows = append(rows, []string{field.Key, field.Type, field.Label, value, strings.Join(flags, ",")})
	}
	return renderTable(
		[]column{textColumn("Field"), textColumn("Type"), textColumn("Label"), textColumn("Value"), textColumn("Flags")},
		rows,
	)
}
