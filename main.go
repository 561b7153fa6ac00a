package main

import (
	"fmt"
	"os"

	"github.com/bwharrington/MarkdownPlus-sub001/cmd"
	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			mdperr.Render(mdperr.New(mdperr.CatIO, fmt.Sprintf("unexpected panic: %v", r)), true)
			os.Exit(2)
		}
	}()

	verbose, err := cmd.Execute()
	if err != nil {
		mdperr.Render(err, verbose)
		os.Exit(1)
	}
}
