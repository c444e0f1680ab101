package merge

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/gofrs/flock"
)

// WriteCSV writes the consolidated table to path, overwriting any prior
// artifact. A sibling lock file keeps two concurrent runs from
// interleaving writes to the same artifact.
func WriteCSV(path string, t *Table) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock artifact: %w", err)
	}
	defer lock.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		for i, col := range t.Columns {
			row[i] = rec.Get(col)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush artifact: %w", err)
	}
	return nil
}
