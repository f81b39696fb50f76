package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ebookform/pkg/render"
	"github.com/goliatone/go-ebookform/pkg/renderers/placeholder"
)

func newFormCmd() *cobra.Command {
	var (
		action string
		method string
		output string
	)
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Render the blank ebook placeholder form as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			if action == "" {
				action = a.cfg.RoutePath
			}
			renderer, err := placeholder.New(
				placeholder.WithFormatter(a.formatter),
				placeholder.WithTheme(a.themeConfig(nil)),
			)
			if err != nil {
				return err
			}
			out, err := renderer.Render(cmd.Context(), nil, render.RenderOptions{
				Action: action,
				Method: method,
			})
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(output, out, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "form action URL (defaults to route_path)")
	cmd.Flags().StringVar(&method, "method", http.MethodPost, "HTTP method; non-POST methods are tunnelled through _method")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
