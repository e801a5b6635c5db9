package jobs

import (
	"fmt"
	"os"
	"time"
)

// timestampLayout is the human-readable prefix used in the job log files.
const timestampLayout = "02/01/2006-15:04:05"

func timestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// appendLine appends one line to an append-only log file, creating it on
// first use.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, line); err != nil {
		return fmt.Errorf("failed to append to log file %s: %w", path, err)
	}

	return nil
}
