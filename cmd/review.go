package cmd

import (
	"fmt"
	"os"

	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/review"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/rewrite"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
)

func reviewCmd() *cli.Command {
	return &cli.Command{
		Name:      "review",
		Usage:     "Review a proposed rewrite of a document interactively",
		ArgsUsage: "<original> <proposed>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "do not write the merged result back to the original file",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return mdperr.Usage("expected two arguments: <original> <proposed>").
					WithHint("example: mdplus review README.md README.proposed.md")
			}

			origPath := c.Args().Get(0)
			propPath := c.Args().Get(1)

			original, err := os.ReadFile(origPath)
			if err != nil {
				return mdperr.WrapIO("reading original document", err)
			}
			proposed, err := os.ReadFile(propPath)
			if err != nil {
				return mdperr.WrapIO("reading proposed document", err)
			}

			registry := review.NewRegistry()
			session := registry.Start(origPath, string(original), string(proposed), "")

			target := origPath
			if c.Bool("dry-run") {
				target = ""
			}
			return runReview(session, target)
		},
	}
}

// runReview opens the interactive review TUI for a session. If applyPath is
// non-empty the merged result is backed up and written there on commit.
func runReview(session *review.Session, applyPath string) error {
	if len(session.Hunks) == 0 {
		fmt.Println("No changes to review.")
		session.Cancel()
		return nil
	}

	opts := []tui.Option{}
	if applyPath != "" {
		opts = append(opts, tui.WithApplyFunc(func(merged string) error {
			if _, err := rewrite.BackupDocument(applyPath, "."); err != nil {
				return err
			}
			return rewrite.Apply(applyPath, merged)
		}))
	}

	m := tui.New(session, session.SubjectID, opts...)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return mdperr.WrapIO("running review UI", err)
	}

	fm, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	if _, committed := fm.Committed(); committed {
		if applyPath != "" {
			fmt.Printf("Applied changes to %s\n", applyPath)
		} else {
			fmt.Println("Review committed (dry run, nothing written).")
		}
	} else {
		fmt.Println("Review cancelled, no changes applied.")
	}
	return nil
}
