package cmd

import (
	"fmt"
	"os"

	"github.com/bwharrington/MarkdownPlus-sub001/internal/api"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/config"
	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/review"
	"github.com/bwharrington/MarkdownPlus-sub001/internal/rewrite"
	"github.com/urfave/cli/v2"
)

func rewriteCmd() *cli.Command {
	return &cli.Command{
		Name:      "rewrite",
		Usage:     "Rewrite a document with AI and review the changes",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "rewrite instruction (e.g. \"tighten the intro\")",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "review the changes without writing them back",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return mdperr.Usage("expected one argument: <file>").
					WithHint("example: mdplus rewrite README.md -m \"tighten the intro\"")
			}
			instruction := c.String("message")
			if instruction == "" {
				return mdperr.Usage("rewrite instruction is required").
					WithHint("pass it with -m, e.g. -m \"fix passive voice\"")
			}

			docPath := c.Args().Get(0)
			content, err := os.ReadFile(docPath)
			if err != nil {
				return mdperr.WrapIO("reading document", err)
			}

			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			apiKey, err := cfg.ResolveAPIKey()
			if err != nil {
				return err
			}

			client := api.NewClient(apiKey, cfg.API.Model)
			client.MaxTokens = cfg.Rewrite.MaxTokens

			fmt.Printf("Rewriting %s...\n", docPath)
			received := 0
			prop, err := rewrite.Rewrite(client, string(content), instruction, cfg.Rewrite.StyleGuide, func(text string) {
				received += len(text)
				fmt.Printf("\r  received %d chars", received)
			})
			if received > 0 {
				fmt.Println()
			}
			if err != nil {
				return err
			}
			if prop.Summary != "" {
				fmt.Printf("Summary: %s\n", prop.Summary)
			}

			registry := review.NewRegistry()
			session := registry.Start(docPath, string(content), prop.ModifiedContent, prop.Summary)

			target := docPath
			if c.Bool("dry-run") {
				target = ""
			}
			return runReview(session, target)
		},
	}
}
