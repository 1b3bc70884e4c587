package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/slidex/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/slidex/internal/domain/entities"
	"github.com/fredcamaral/slidex/internal/domain/ports"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List the slides found in every lesson without writing anything",
		Long: `Parse every lesson and print its slides (start line, line count and
title) together with any marker problems. Nothing is written.

Example:
  slidex inspect -d course/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			presentations, err := a.generator.Inspect(cmd.Context())
			if err != nil {
				return err
			}

			printInspection(cmd.OutOrStdout(), presentations, markdown.NewTitleExtractor(), !opts.noColor)
			return nil
		},
	}
}

// printInspection renders a slide table and, when needed, a diagnostics table
func printInspection(out io.Writer, presentations []*entities.Presentation, titles ports.TitleExtractor, color bool) {
	re := lipgloss.NewRenderer(out)

	slideRows := [][]string{}
	diagRows := [][]string{}
	slideCount, malformed := 0, 0

	for _, p := range presentations {
		if len(p.Slides) == 0 {
			slideRows = append(slideRows, []string{p.LessonName, "-", "-", "-", "(no slides)"})
		}
		for i, slide := range p.Slides {
			slideRows = append(slideRows, []string{
				p.LessonName,
				strconv.Itoa(i + 1),
				strconv.Itoa(slide.StartLine),
				strconv.Itoa(slide.LineCount()),
				titles.Title(slide, i),
			})
		}
		slideCount += len(p.Slides)
		if p.HasErrors() {
			malformed++
		}

		for _, d := range p.Diagnostics {
			diagRows = append(diagRows, []string{
				p.LessonName,
				strconv.Itoa(d.Line),
				string(d.Severity),
				d.Message,
			})
		}
	}

	fmt.Fprintln(out, newTable(re, color).
		Headers("LESSON", "#", "LINE", "LINES", "TITLE").
		Rows(slideRows...).
		Render())

	if len(diagRows) > 0 {
		fmt.Fprintln(out, newTable(re, color).
			Headers("LESSON", "LINE", "SEVERITY", "MESSAGE").
			Rows(diagRows...).
			Render())
	}

	fmt.Fprintf(out, "%d lesson(s), %d slide(s), %d diagnostic(s)\n",
		len(presentations), slideCount, len(diagRows))
	if malformed > 0 {
		fmt.Fprintf(out, "%d lesson(s) with malformed slide markers\n", malformed)
	}
}

func newTable(re *lipgloss.Renderer, color bool) *table.Table {
	cell := re.NewStyle().Padding(0, 1)
	header := cell
	border := re.NewStyle()
	if color {
		header = cell.Bold(true).Foreground(lipgloss.Color("12"))
		border = border.Foreground(lipgloss.Color("241"))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
