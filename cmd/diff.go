package cmd

import (
	"fmt"
	"os"

	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/review"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
)

// Diff styles.
var (
	diffAddedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	diffRemovedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	diffContextStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))
)

func diffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Print the line diff between two documents without reviewing",
		ArgsUsage: "<original> <proposed>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return mdperr.Usage("expected two arguments: <original> <proposed>").
					WithHint("example: mdplus diff README.md README.proposed.md")
			}

			original, err := os.ReadFile(c.Args().Get(0))
			if err != nil {
				return mdperr.WrapIO("reading original document", err)
			}
			proposed, err := os.ReadFile(c.Args().Get(1))
			if err != nil {
				return mdperr.WrapIO("reading proposed document", err)
			}

			session := review.NewSession(c.Args().Get(0), string(original), string(proposed), "")
			lines := review.Project(session)

			for _, dl := range lines {
				fmt.Println(renderDiffLine(dl))
			}

			added, removed := review.Stats(session)
			fmt.Printf("\n%d change(s), +%d -%d\n", len(session.Hunks), added, removed)
			return nil
		},
	}
}

// renderDiffLine styles a single projected line with its prefix.
func renderDiffLine(dl review.DisplayLine) string {
	switch dl.Kind {
	case review.LineAdded:
		return diffAddedStyle.Render("+ " + dl.Text)
	case review.LineRemoved:
		return diffRemovedStyle.Render("- " + dl.Text)
	default:
		return diffContextStyle.Render("  " + dl.Text)
	}
}
