package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ebookform/pkg/form"
	"github.com/goliatone/go-ebookform/pkg/model"
	"github.com/goliatone/go-ebookform/pkg/render"
	"github.com/goliatone/go-ebookform/pkg/renderers/placeholder"
	"github.com/goliatone/go-ebookform/pkg/renderers/tui"
)

func newNewCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Describe an ebook placeholder interactively and print its summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			collector := tui.New(tui.WithPromptDriver(a.driver))
			values, err := collector.Collect(ctx)
			if err != nil {
				if errors.Is(err, tui.ErrAborted) {
					fmt.Fprintln(cmd.ErrOrStderr(), "aborted")
					return nil
				}
				return err
			}

			binder := form.NewBinder(a.formatter, form.WithBaseURL(a.cfg.BaseURL))
			ebook, err := binder.BindEbook(values)
			if err == nil && ebook.IsInProgress() {
				var project model.Project
				project, err = binder.BindProject(values)
				if err == nil {
					ebook.ProjectInProgress = &project
				}
			}
			if err != nil {
				printIssues(cmd, err)
				return err
			}

			summary, err := placeholder.NewSummary(
				placeholder.WithFormatter(a.formatter),
				placeholder.WithTheme(a.themeConfig(nil)),
			)
			if err != nil {
				return err
			}
			out, err := summary.Render(ctx, &ebook, render.RenderOptions{})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "identifier: %s\n", ebook.Identifier)
			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func printIssues(cmd *cobra.Command, err error) {
	mapping := render.MapError(err)
	for _, message := range mapping.Form {
		fmt.Fprintf(cmd.ErrOrStderr(), "- %s\n", message)
	}
	fields := make([]string, 0, len(mapping.Fields))
	for field := range mapping.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, message := range mapping.Fields[field] {
			fmt.Fprintf(cmd.ErrOrStderr(), "- %s: %s\n", field, message)
		}
	}
}
