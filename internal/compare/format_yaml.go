package compare

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats comparison results as YAML
type YAMLFormatter struct{}

// Name returns the registry name
func (yf *YAMLFormatter) Name() string { return "yaml" }

// Format generates YAML output for a report
func (yf *YAMLFormatter) Format(report *Report) (string, error) {
	return yf.marshal(report)
}

// FormatSweep generates YAML output for a salary sweep
func (yf *YAMLFormatter) FormatSweep(analysis *domain.SalarySensitivityAnalysis) (string, error) {
	return yf.marshal(analysis)
}

func (yf *YAMLFormatter) marshal(v any) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}
