package models

// ReportFormat selects between the two supported report layouts
type ReportFormat int

const (
	// FormatObject wraps all entries in an outer JSON object and
	// includes the portDescription field
	FormatObject ReportFormat = iota

	// FormatLines emits the bare comma-joined entry lines without the
	// portDescription field
	FormatLines
)

// ParseReportFormat converts a --format flag value to a ReportFormat
func ParseReportFormat(s string) (ReportFormat, bool) {
	switch s {
	case "object":
		return FormatObject, true
	case "lines":
		return FormatLines, true
	default:
		return FormatObject, false
	}
}

// AnalyzeConfig contains configuration for one analysis run
type AnalyzeConfig struct {
	// Input/Output
	Archives []string // archive paths from the command line
	InFile   string   // read archive paths from file, one per line
	OutFile  string   // write report to file instead of stdout

	// Output shape
	Format ReportFormat

	// Quiet suppresses progress messages for this run
	Quiet bool

	// Signing
	SignKeyPath    string
	SignPassphrase string
}
