package estimator

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Ammaar-Alam/draw-calculator/internal/logger"
)

// drawTimeLayout matches the housing office export, e.g. "4/22/25 9:30 AM".
const drawTimeLayout = "1/2/06 3:04 PM"

// Entry is one row of a draw-time roster, ordered by DrawAt.
type Entry struct {
	PUID      string
	FirstName string
	LastName  string
	DrawTime  string // original display string from the CSV
	DrawAt    time.Time
}

// LoadRoster reads a draw-time CSV (PUID, Draw Time, Last Name, First Name)
// and returns its entries sorted by draw time, ties broken by original row
// order. Rows whose draw time cannot be parsed are skipped with a warning,
// matching how the housing exports occasionally carry placeholder rows.
func LoadRoster(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster header: %w", err)
	}
	cols, err := columnIndex(header, "PUID", "Draw Time", "Last Name", "First Name")
	if err != nil {
		return nil, fmt.Errorf("roster %s: %w", path, err)
	}

	var entries []Entry
	for row := 1; ; row++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
		}
		e := Entry{
			PUID:      field(record, cols["PUID"]),
			FirstName: field(record, cols["First Name"]),
			LastName:  field(record, cols["Last Name"]),
			DrawTime:  field(record, cols["Draw Time"]),
		}
		at, perr := time.Parse(drawTimeLayout, e.DrawTime)
		if perr != nil {
			logger.Warn("Skipping roster row %d in %s: unparseable draw time %q", row, path, e.DrawTime)
			continue
		}
		e.DrawAt = at
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DrawAt.Before(entries[j].DrawAt)
	})
	return entries, nil
}

// columnIndex maps required header names to their positions. The first cell
// is stripped of a UTF-8 BOM, which the housing office exports carry.
func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
