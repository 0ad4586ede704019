package core

import (
	"fmt"
	"strings"
	"time"
)

// FormatReport renders the available-names report: two comment lines, a
// blank line, then one available name per line with no trailing newline.
func FormatReport(total int, available []string, timestamp time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Minecraft name availability check (%s)\n", timestamp.Format(ReportTimestampLayout))
	fmt.Fprintf(&b, "# Checked %d names, found %d available\n\n", total, len(available))
	b.WriteString(strings.Join(available, "\n"))

	return b.String()
}
