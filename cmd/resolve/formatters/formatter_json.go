package formatters

import (
	"encoding/json"

	"github.com/LegacyCodeHQ/buildgraph/resolution"
)

// JSONFormatter formats resolution reports as JSON.
type JSONFormatter struct{}

// Format converts the report to JSON format.
// The opts parameter is accepted for interface compatibility but not used.
func (f *JSONFormatter) Format(r resolution.Report, opts RenderOptions) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
