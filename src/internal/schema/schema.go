package schema

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"roster/src/internal/dates"
	"roster/src/internal/table"
)

// Canonical roster column names.
const (
	Badge           = "badge"
	FullName        = "full_name"
	Title           = "title"
	Unit            = "unit"
	UnitDescription = "unit_description"
	FirstName       = "first_name"
	MiddleName      = "middle_name"
	LastName        = "last_name"
	Suffix          = "suffix"
	Date            = "date"
)

// Record is one officer row of a roster snapshot.
type Record struct {
	Badge           string `yaml:"badge" json:"badge"`
	FullName        string `yaml:"full_name" json:"full_name"`
	Title           string `yaml:"title,omitempty" json:"title,omitempty"`
	Unit            string `yaml:"unit,omitempty" json:"unit,omitempty"`
	UnitDescription string `yaml:"unit_description,omitempty" json:"unit_description,omitempty"`
	FirstName       string `yaml:"first_name,omitempty" json:"first_name,omitempty"`
	MiddleName      string `yaml:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName        string `yaml:"last_name,omitempty" json:"last_name,omitempty"`
	Suffix          string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	Date            string `yaml:"date" json:"date"`
}

// Columns is every canonical column, in output order.
var Columns = []string{Badge, FullName, Title, Unit, UnitDescription, FirstName, MiddleName, LastName, Suffix, Date}

// DerivedColumns are filled in by name splitting.
var DerivedColumns = []string{FirstName, MiddleName, LastName, Suffix}

// HistoricalColumns is the column set kept in the historical CSV. suffix is
// not part of it.
var HistoricalColumns = []string{Badge, FullName, Title, Unit, UnitDescription, FirstName, MiddleName, LastName, Date}

// Suffixes lists the normalized generational suffixes.
var Suffixes = []string{"Jr", "II", "III", "IV"}

var defaultRenames = map[string]string{
	"Name":              FullName,
	"Badge_Num":         Badge,
	"Serial":            Badge,
	"Title_Description": Title,
	"Title Description": Title,
	"Unit":              Unit,
	"Unit Description":  UnitDescription,
	"Unit_Description":  UnitDescription,
}

// DefaultRenames returns a copy of the source-column spelling table seen in
// department exports.
func DefaultRenames() map[string]string { return maps.Clone(defaultRenames) }

// Validate checks the invariants a stored record must hold.
func (r *Record) Validate() error {
	if err := dates.ValidateISO(r.Date); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	if r.Suffix != "" && !slices.Contains(Suffixes, r.Suffix) {
		return fmt.Errorf("suffix %q is not one of %s", r.Suffix, strings.Join(Suffixes, ", "))
	}
	if strings.TrimSpace(r.Badge) == "" && strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("badge or full_name is required")
	}
	return nil
}

// Decode converts table rows into records. Missing optional columns decode as
// empty strings; date is required.
func Decode(t *table.Table) ([]Record, error) {
	if err := t.Require(Date); err != nil {
		return nil, err
	}
	out := make([]Record, 0, t.Len())
	for i := range t.Rows {
		r := Record{
			Badge:           t.Get(i, Badge),
			FullName:        t.Get(i, FullName),
			Title:           t.Get(i, Title),
			Unit:            t.Get(i, Unit),
			UnitDescription: t.Get(i, UnitDescription),
			FirstName:       t.Get(i, FirstName),
			MiddleName:      t.Get(i, MiddleName),
			LastName:        t.Get(i, LastName),
			Suffix:          t.Get(i, Suffix),
			Date:            t.Get(i, Date),
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// Encode lays records out as a table with Columns as the header.
func Encode(recs []Record) *table.Table {
	t := table.New(Columns...)
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{r.Badge, r.FullName, r.Title, r.Unit, r.UnitDescription,
			r.FirstName, r.MiddleName, r.LastName, r.Suffix, r.Date})
	}
	return t
}
