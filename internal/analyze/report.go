package analyze

import (
	"fmt"
	"strings"

	"github.com/portmeta/portmeta/internal/models"
)

// renderTargets renders a target list as a JSON array literal. The empty
// list renders as [] for seeded names and fallback entries alike.
func renderTargets(targets []string) string {
	if len(targets) == 0 {
		return "[]"
	}
	return fmt.Sprintf(`["%s"]`, strings.Join(targets, `", "`))
}

// renderEntry renders one package entry as a report line
func renderEntry(record *models.PortRecord, key string, targets []string, format models.ReportFormat) string {
	if format == models.FormatLines {
		return fmt.Sprintf(`    "%s": { "name": "%s", "targets": %s, "portName": "%s", "description": "%s" }`,
			key, key, renderTargets(targets), record.PortName, record.Usage)
	}
	return fmt.Sprintf(`    "%s": { "name": "%s", "targets": %s, "portName": "%s", "portDescription": "%s", "description": "%s" }`,
		key, key, renderTargets(targets), record.PortName, record.PortDescription, record.Usage)
}

// RenderRecord renders all entries of one port record. A port with no
// discovered names still contributes one line, keyed by the port name with
// an underscore prefix, so every processed archive is visible in the report.
func RenderRecord(record *models.PortRecord, format models.ReportFormat) []string {
	if len(record.Packages) == 0 {
		fallbackKey := "_" + record.PortName
		return []string{renderEntry(record, fallbackKey, nil, format)}
	}

	lines := make([]string, 0, len(record.Packages))
	for _, entry := range record.Packages {
		lines = append(lines, renderEntry(record, entry.Name, entry.Targets, format))
	}
	return lines
}

// RenderReport renders the full report for all records, in input order
func RenderReport(records []*models.PortRecord, format models.ReportFormat) string {
	var lines []string
	for _, record := range records {
		lines = append(lines, RenderRecord(record, format)...)
	}

	joined := strings.Join(lines, ",\n")
	if format == models.FormatObject {
		return fmt.Sprintf("{\n%s\n}\n", joined)
	}
	return joined + "\n"
}
