package domain

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Section identifies an Income Tax Act section under which an amount is claimed
type Section string

const (
	Section80C      Section = "80C"
	Section80CCC    Section = "80CCC"
	Section80CCD1   Section = "80CCD1"
	Section80CCD1B  Section = "80CCD1B"
	Section80D      Section = "80D"
	Section24B      Section = "24B"
	Section80E      Section = "80E"
	Section80G      Section = "80G"
	Section80TTATTB Section = "80TTA_TTB"
	Section80DDB    Section = "80DDB"
	Section80U      Section = "80U"
	Section80GG     Section = "80GG"
)

// AllSections lists every recognized section
var AllSections = []Section{
	Section80C, Section80CCC, Section80CCD1, Section80CCD1B, Section80D, Section24B,
	Section80E, Section80G, Section80TTATTB, Section80DDB, Section80U, Section80GG,
}

// form field names used by the web calculator
var formFieldAliases = map[string]Section{
	"section_80c":       Section80C,
	"section_80ccc":     Section80CCC,
	"section_80ccd1":    Section80CCD1,
	"section_80ccd_1":   Section80CCD1,
	"section_80ccd_1b":  Section80CCD1B,
	"section_80d":       Section80D,
	"section_24b":       Section24B,
	"section_80e":       Section80E,
	"section_80g":       Section80G,
	"section_80tta_ttb": Section80TTATTB,
	"section_80tta":     Section80TTATTB,
	"section_80ttb":     Section80TTATTB,
	"section_80ddb":     Section80DDB,
	"section_80u":       Section80U,
	"section_80gg":      Section80GG,
}

var sectionLookup = func() map[string]Section {
	m := lo.SliceToMap(AllSections, func(s Section) (string, Section) {
		return strings.ToLower(string(s)), s
	})
	for alias, s := range formFieldAliases {
		m[alias] = s
	}
	return m
}()

// ParseSection resolves a canonical section id ("80CCD1B") or a form
// field name ("section_80ccd_1b"). Matching is case-insensitive.
func ParseSection(s string) (Section, bool) {
	section, ok := sectionLookup[strings.ToLower(strings.TrimSpace(s))]
	return section, ok
}

// DeductionInputs maps a section to the amount claimed under it.
// Missing sections read as zero.
type DeductionInputs map[Section]decimal.Decimal

// Get returns the claimed amount, treating missing and negative values as zero
func (d DeductionInputs) Get(s Section) decimal.Decimal {
	v, ok := d[s]
	if !ok || v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// With returns a copy of the inputs with amount added to section s
func (d DeductionInputs) With(s Section, amount decimal.Decimal) DeductionInputs {
	out := make(DeductionInputs, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[s] = d.Get(s).Add(amount)
	return out
}

// DeductionLine records how much of a group's claim was allowed
type DeductionLine struct {
	Group   string          `yaml:"group" json:"group"`
	Claimed decimal.Decimal `yaml:"claimed" json:"claimed"`
	Allowed decimal.Decimal `yaml:"allowed" json:"allowed"`
}
