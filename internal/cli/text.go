package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newSlugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug TEXT...",
		Short: "Print the URL-safe form of TEXT",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.formatter.MakeURLSafe(strings.Join(args, " ")))
			return err
		},
	}
}

func newDiacriticsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diacritics TEXT...",
		Short: "Transliterate TEXT to lowercase ASCII",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			if !a.formatter.TransliterationAvailable() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: transliteration unavailable, text is printed unchanged")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.formatter.RemoveDiacritics(strings.Join(args, " ")))
			return err
		},
	}
}

func newEscapeCmd() *cobra.Command {
	var xml bool
	cmd := &cobra.Command{
		Use:   "escape [--xml] TEXT...",
		Short: "Escape TEXT for HTML or XML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			out := a.formatter.EscapeHTML(&text)
			if xml {
				out = a.formatter.EscapeXML(&text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&xml, "xml", false, "escape for XML (apostrophes become &apos;)")
	return cmd
}

func newMarkdownCmd() *cobra.Command {
	var terminal bool
	cmd := &cobra.Command{
		Use:   "markdown [--terminal] [FILE|-]",
		Short: "Render Markdown as sanitized HTML, or styled for the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			text, err := readSource(cmd, source)
			if err != nil {
				return err
			}

			if !terminal {
				_, err = io.WriteString(cmd.OutOrStdout(), a.formatter.MarkdownToHTML(&text))
				return err
			}
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle(a.cfg.Markdown.Style),
				glamour.WithWordWrap(a.cfg.Markdown.WordWrap),
			)
			if err != nil {
				return fmt.Errorf("markdown: terminal renderer: %w", err)
			}
			out, err := r.Render(text)
			if err != nil {
				return fmt.Errorf("markdown: render: %w", err)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().BoolVar(&terminal, "terminal", false, "render for the terminal instead of HTML")
	return cmd
}

func newFilesizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filesize BYTES",
		Short: "Format a byte count as a human readable size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}
			n, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("filesize: %q is not a byte count", args[0])
			}
			out, err := a.formatter.ToFileSize(&n)
			if err != nil {
				return fmt.Errorf("filesize: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
}

func readSource(cmd *cobra.Command, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", source, err)
	}
	return string(data), nil
}
