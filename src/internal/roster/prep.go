// Package roster holds the roster pipelines: normalizing a department export
// and appending snapshots to the historical roster.
package roster

import (
	"fmt"

	"go.uber.org/zap"

	"roster/src/internal/dates"
	"roster/src/internal/logging"
	"roster/src/internal/names"
	"roster/src/internal/sanitize"
	"roster/src/internal/schema"
	"roster/src/internal/table"
)

// PrepOptions configures one normalization run.
type PrepOptions struct {
	Date       string
	Renames    map[string]string
	Convention names.Convention
	Logger     *zap.Logger
}

// Prep normalizes t in place: canonical column names, trimmed cells, split
// names and the snapshot date.
func Prep(t *table.Table, opts PrepOptions) error {
	log := logging.OrNop(opts.Logger)
	if err := dates.ValidateISO(opts.Date); err != nil {
		return err
	}
	t.MapHeader(sanitize.Header)
	t.Rename(opts.Renames)
	t.MapCells(sanitize.Cell)
	if err := t.Require(schema.FullName); err != nil {
		return err
	}
	for _, c := range schema.DerivedColumns {
		t.EnsureColumn(c)
	}
	for i := range t.Rows {
		full := t.Get(i, schema.FullName)
		if full == "" {
			log.Debug("skipping row without full_name", zap.Int("row", i+1))
			continue
		}
		p, err := names.Split(full, opts.Convention)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		t.Set(i, schema.FirstName, p.First)
		t.Set(i, schema.MiddleName, p.Middle)
		t.Set(i, schema.LastName, p.Last)
		t.Set(i, schema.Suffix, p.Suffix)
	}
	t.EnsureColumn(schema.Date)
	for i := range t.Rows {
		t.Set(i, schema.Date, opts.Date)
	}
	log.Debug("prepared roster", zap.Int("rows", t.Len()), zap.String("date", opts.Date), zap.Stringer("convention", opts.Convention))
	return nil
}

// PrepFile loads in, normalizes it and writes the result to out.
func PrepFile(in, out string, opts PrepOptions) (*table.Table, error) {
	t, err := table.Load(in)
	if err != nil {
		return nil, err
	}
	if err := Prep(t, opts); err != nil {
		return nil, fmt.Errorf("prep %s: %w", in, err)
	}
	if err := table.Write(t, out); err != nil {
		return nil, err
	}
	logging.OrNop(opts.Logger).Info("wrote roster", zap.String("path", out), zap.Int("rows", t.Len()))
	return t, nil
}

// CheckNames rebuilds every split name so it can be compared with full_name.
// It returns one [full_name, rejoined] pair per row that has a name.
func CheckNames(t *table.Table, conv names.Convention) ([][2]string, error) {
	if err := t.Require(schema.FullName, schema.FirstName, schema.LastName); err != nil {
		return nil, err
	}
	var out [][2]string
	for i := range t.Rows {
		full := t.Get(i, schema.FullName)
		if full == "" {
			continue
		}
		p := names.Parts{
			First:  t.Get(i, schema.FirstName),
			Middle: t.Get(i, schema.MiddleName),
			Last:   t.Get(i, schema.LastName),
			Suffix: t.Get(i, schema.Suffix),
		}
		out = append(out, [2]string{full, names.Join(p, conv)})
	}
	return out, nil
}
