package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize mdplus in the current project",
		Action: func(c *cli.Context) error {
			return runInit()
		},
	}
}

func runInit() error {
	root := ".mdplus"

	dirs := []string{
		filepath.Join(root, "backups"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	configPath := filepath.Join(root, "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	// Ask about git tracking for backup files
	trackBackups := askYesNo("Track document backups in git? (y/N)")

	var ignoreLines []string
	if !trackBackups {
		ignoreLines = append(ignoreLines, ".mdplus/backups/")
	}
	ignoreLines = append(ignoreLines, ".mdplus/config.toml")

	if err := appendGitignore(ignoreLines); err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}

	fmt.Println("Initialized mdplus project.")
	fmt.Println()
	fmt.Println("Quickstart:")
	fmt.Println("  mdplus rewrite <file> -m <instruction>   Rewrite a document and review the changes")
	fmt.Println("  mdplus review <original> <proposed>      Review a proposed rewrite interactively")
	fmt.Println("  mdplus diff <original> <proposed>        Print a line diff without reviewing")

	return nil
}

func askYesNo(prompt string) bool {
	fmt.Print(prompt + " ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

func appendGitignore(lines []string) error {
	const gitignorePath = ".gitignore"

	existing := make(map[string]bool)
	if data, err := os.ReadFile(gitignorePath); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			existing[strings.TrimSpace(line)] = true
		}
	}

	var toAdd []string
	for _, line := range lines {
		if !existing[line] {
			toAdd = append(toAdd, line)
		}
	}

	if len(toAdd) == 0 {
		return nil
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	// Ensure we start on a new line
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		data, _ := os.ReadFile(gitignorePath)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(f)
		}
	}

	for _, line := range toAdd {
		fmt.Fprintln(f, line)
	}

	return nil
}

const defaultConfig = `# mdplus configuration

# AI provider settings
[api]
# model = "claude-sonnet-4-20250514"
# api_key = ""

# Rewrite defaults
[rewrite]
# max_tokens = 8192
# style_guide = "Keep headings in sentence case."
`
