package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	mdperr "github.com/bwharrington/MarkdownPlus-sub001/internal/errors"
)

// BackupDocument copies the document to .mdplus/backups/<name>-<timestamp>
// before a commit overwrites it. Returns the backup file path.
func BackupDocument(docPath, rootDir string) (string, error) {
	backupsDir := filepath.Join(rootDir, ".mdplus", "backups")
	if err := os.MkdirAll(backupsDir, 0o755); err != nil {
		return "", mdperr.WrapIO("creating backups directory", err)
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return "", mdperr.WrapIO("reading document for backup", err)
	}

	ext := filepath.Ext(docPath)
	base := strings.TrimSuffix(filepath.Base(docPath), ext)
	ts := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(backupsDir, fmt.Sprintf("%s-%s%s", base, ts, ext))

	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", mdperr.WrapIO("writing backup", err)
	}

	return backupPath, nil
}

// Apply overwrites the document with the merged review result as a
// single edit. A terminal newline is restored if the merge dropped it.
func Apply(docPath, content string) error {
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(docPath, []byte(content), 0o644); err != nil {
		return mdperr.WrapIO("writing document", err)
	}
	return nil
}
