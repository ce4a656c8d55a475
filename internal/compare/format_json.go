package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/taxregime/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Name returns the registry name
func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output for a report
func (jf *JSONFormatter) Format(report *Report) (string, error) {
	return jf.marshal(report)
}

// FormatSweep generates JSON output for a salary sweep
func (jf *JSONFormatter) FormatSweep(analysis *domain.SalarySensitivityAnalysis) (string, error) {
	return jf.marshal(analysis)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
