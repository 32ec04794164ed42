package roster

import (
	"fmt"

	"go.uber.org/zap"

	"roster/src/internal/dates"
	"roster/src/internal/logging"
	"roster/src/internal/schema"
	"roster/src/internal/table"
)

// AddOptions configures an append to the historical roster.
type AddOptions struct {
	// Columns every input must provide; inputs are projected to them.
	Columns []string
	Logger  *zap.Logger
}

// Added records how many rows one input contributed.
type Added struct {
	Path string
	Rows int
}

// Summary describes a completed append.
type Summary struct {
	Added []Added
	Total int
	// Latest is the newest snapshot date in the rewritten roster.
	Latest string
}

// AddToHistorical appends each input to the historical roster at historical
// and rewrites it. All inputs are merged in memory first; any error aborts the
// run before the historical file is touched. Concurrent runs against the same
// file are not coordinated: the last writer wins.
func AddToHistorical(historical string, inputs []string, opts AddOptions) (Summary, error) {
	log := logging.OrNop(opts.Logger)
	var sum Summary
	hist, err := table.Load(historical)
	if err != nil {
		return sum, fmt.Errorf("historical roster: %w", err)
	}
	merged, err := merge(hist, inputs, opts, func(path string, rows int) {
		log.Info("adding roster", zap.String("input", path), zap.Int("rows", rows))
		sum.Added = append(sum.Added, Added{Path: path, Rows: rows})
		sum.Total += rows
	})
	if err != nil {
		return Summary{}, err
	}
	if err := table.Write(merged, historical); err != nil {
		return Summary{}, err
	}
	sum.Latest = latestDate(merged)
	log.Info("wrote historical roster", zap.String("path", historical), zap.Int("rows", merged.Len()), zap.Int("added", sum.Total), zap.String("latest", sum.Latest))
	return sum, nil
}

// merge appends every input file to base in order, enforcing opts.Columns on
// each. onAdd, if set, is called after each input is merged.
func merge(base *table.Table, inputs []string, opts AddOptions, onAdd func(path string, rows int)) (*table.Table, error) {
	merged := base
	for _, in := range inputs {
		xt, err := table.Load(in)
		if err != nil {
			return nil, err
		}
		next, err := table.AppendStrict(merged, xt, opts.Columns)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in, err)
		}
		merged = next
		if onAdd != nil {
			onAdd(in, xt.Len())
		}
	}
	return merged, nil
}

func latestDate(t *table.Table) string {
	ds := make([]string, t.Len())
	for i := range t.Rows {
		ds[i] = t.Get(i, schema.Date)
	}
	return dates.Latest(ds...)
}
