package formatters

import "strings"

// OutputFormat represents an output format type
type OutputFormat string

const (
	OutputFormatText    OutputFormat = "text"
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatDOT     OutputFormat = "dot"
	OutputFormatMermaid OutputFormat = "mermaid"
)

var supportedFormats = []OutputFormat{
	OutputFormatText,
	OutputFormatJSON,
	OutputFormatDOT,
	OutputFormatMermaid,
}

// String returns the string representation of the format
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat parses a format name case-insensitively.
func ParseOutputFormat(format string) (OutputFormat, bool) {
	for _, f := range supportedFormats {
		if strings.EqualFold(format, f.String()) {
			return f, true
		}
	}
	return "", false
}

// SupportedFormats returns the supported format names, comma separated.
func SupportedFormats() string {
	names := make([]string, 0, len(supportedFormats))
	for _, f := range supportedFormats {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
