package merge

import (
	"errors"

	"joblists/internal/dispatch"
	"joblists/internal/domain"
)

// ErrNoData means every producer came back empty; nothing to write.
var ErrNoData = errors.New("no job data collected")

// Table is the consolidated output: the source column first, then every
// other observed field in first-occurrence order across the union.
type Table struct {
	Columns []string
	Records []*domain.Record
}

// Flatten concatenates the per-producer sequences into one sequence.
// Order across producers is completion order (not significant); order
// within a producer's own sequence is preserved.
func Flatten(results []dispatch.Result) []*domain.Record {
	var out []*domain.Record
	for _, res := range results {
		out = append(out, res.Records...)
	}
	return out
}

// EnforceSchema returns a copy of rec with every required field present,
// filling domain.Sentinel where the portal gave nothing. Extra fields
// are preserved untouched.
func EnforceSchema(rec *domain.Record) *domain.Record {
	out := rec.Clone()
	if !out.Has(domain.SourceField) {
		out.Set(domain.SourceField, domain.Sentinel)
	}
	for _, f := range domain.RequiredFields {
		if !out.Has(f) {
			out.Set(f, domain.Sentinel)
		}
	}
	return out
}

// Build flattens all producer results, enforces the schema on each
// record, and projects the columns. Returns ErrNoData when there is
// nothing to consolidate.
func Build(results []dispatch.Result) (*Table, error) {
	flat := Flatten(results)
	if len(flat) == 0 {
		return nil, ErrNoData
	}

	recs := make([]*domain.Record, 0, len(flat))
	for _, r := range flat {
		recs = append(recs, EnforceSchema(r))
	}

	return &Table{Columns: columns(recs), Records: recs}, nil
}

func columns(recs []*domain.Record) []string {
	cols := []string{domain.SourceField}
	seen := map[string]bool{domain.SourceField: true}
	for _, r := range recs {
		for _, k := range r.Keys() {
			if seen[k] {
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	return cols
}

// Summary counts rows per source over the final table, so the counts
// always agree with what was actually written.
func (t *Table) Summary() map[string]int {
	counts := make(map[string]int)
	for _, r := range t.Records {
		counts[r.Get(domain.SourceField)]++
	}
	return counts
}
