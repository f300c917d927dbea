package evidencepdf

import (
	"fmt"
	"strings"
)

// SummaryReport renders job counts followed by one line per completed and
// failed job. Empty sections are left out.
func (m *BatchManager) SummaryReport() string {
	jobs := m.Jobs()

	var completed, failed []Job
	pending := 0
	for _, j := range jobs {
		switch j.Status {
		case JobCompleted:
			completed = append(completed, j)
		case JobFailed:
			failed = append(failed, j)
		case JobPending:
			pending++
		}
	}

	var b strings.Builder
	b.WriteString("Batch processing summary\n")
	b.WriteString("========================\n")
	fmt.Fprintf(&b, "Total jobs: %d\n", len(jobs))
	fmt.Fprintf(&b, "Completed: %d\n", len(completed))
	fmt.Fprintf(&b, "Failed: %d\n", len(failed))
	fmt.Fprintf(&b, "Pending: %d\n", pending)
	b.WriteString("\n")

	if len(completed) > 0 {
		b.WriteString("Completed jobs:\n")
		for _, j := range completed {
			fmt.Fprintf(&b, "  ✓ %s -> %s\n", j.ID, j.OutputPath)
		}
		b.WriteString("\n")
	}

	if len(failed) > 0 {
		b.WriteString("Failed jobs:\n")
		for _, j := range failed {
			fmt.Fprintf(&b, "  ✗ %s: %s\n", j.ID, j.Error)
		}
	}

	return b.String()
}
