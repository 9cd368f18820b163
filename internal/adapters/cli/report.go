package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/launchgate/internal/ports/primary"
)

// printReport writes one line describing an update report.
func printReport(out io.Writer, report primary.UpdateReport) {
	switch {
	case report.QueryErr != nil:
		fmt.Fprintf(out, "%s %v\n", color.New(color.FgYellow).Sprint("!"), report.QueryErr)
	case report.FlowErr != nil:
		fmt.Fprintf(out, "%s %s, %v\n", color.New(color.FgYellow).Sprint("!"), report.Availability, report.FlowErr)
	case report.FlowStarted:
		fmt.Fprintf(out, "%s %s, immediate flow started (%s)\n", color.New(color.FgCyan).Sprint("↻"), report.Availability, report.CorrelationID)
	default:
		fmt.Fprintf(out, "%s, nothing to do\n", report.Availability)
	}
}
