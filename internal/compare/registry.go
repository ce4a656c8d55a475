package compare

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/samber/lo"
)

// Formatter renders reports and salary sweeps in one output format
type Formatter interface {
	Name() string
	Format(report *Report) (string, error)
	FormatSweep(analysis *domain.SalarySensitivityAnalysis) (string, error)
}

var formatters = map[string]func() Formatter{
	"table": func() Formatter { return &TableFormatter{} },
	"csv":   func() Formatter { return &CSVFormatter{} },
	"json":  func() Formatter { return &JSONFormatter{Pretty: true} },
	"yaml":  func() Formatter { return &YAMLFormatter{} },
}

// formatter aliases accepted on the command line
var formatterAliases = map[string]string{
	"console": "table",
	"text":    "table",
	"yml":     "yaml",
}

// GetFormatterByName returns a new formatter for name, or nil if unknown
func GetFormatterByName(name string) Formatter {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatterAliases[key]; ok {
		key = alias
	}
	factory, ok := formatters[key]
	if !ok {
		return nil
	}
	return factory()
}

// FormatterNames lists the registered formatter names in sorted order
func FormatterNames() []string {
	names := lo.Keys(formatters)
	sort.Strings(names)
	return names
}
