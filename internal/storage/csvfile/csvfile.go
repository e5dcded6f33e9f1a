// Package csvfile provides the flat-file implementation of the
// storage.Storage interface: one append-only CSV dataset.
//
// WHY A CSV FILE?
// ───────────────
// The whole persistence need here is "append one row, read them all
// back". A CSV file keeps that inspectable with any spreadsheet or
// `cat`, needs no server process, and survives restarts. The accepted
// trade-off: a crash mid-write may corrupt the last row, and there is
// no protection against other processes writing the same file.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/coursedesk/registrations-api/internal/config"
	"github.com/coursedesk/registrations-api/internal/types"
)

// timeLayout is the format of the server-assigned timestamp column.
const timeLayout = "2006-01-02 15:04:05"

// header is the column order written on file creation. Reads resolve
// columns by these names rather than by position, so a hand-edited
// file with reordered columns still loads.
var header = []string{"name", "mobile", "course", "timestamp"}

// CSVFile is the concrete implementation of storage.Storage.
// The mutex serialises appends and reads within this process; the file
// itself is opened fresh on every call, so there is no shared handle
// state between requests.
type CSVFile struct {
	mu   sync.Mutex
	path string

	// now is swapped out in tests to pin the generated timestamp.
	now func() time.Time
}

// New returns a store writing to cfg.StoragePath. The file is not
// created here — it appears, header first, on the first append, so a
// fresh deployment shows "no registrations" rather than an empty table.
func New(cfg *config.Config) *CSVFile {
	return &CSVFile{
		path: cfg.StoragePath,
		now:  time.Now,
	}
}

// AppendRegistration stamps the current server time onto rec and writes
// it as one CSV row, creating the file with a header row if needed.
// Each call adds exactly one row; nothing is ever rewritten.
func (s *CSVFile) AppendRegistration(rec types.Registration) (types.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The timestamp is always server-assigned — whatever the caller
	// put in the field is discarded.
	rec.Timestamp = s.now().Format(timeLayout)

	// Check existence BEFORE O_CREATE opens (and thereby creates) the
	// file, so we know whether to write the header row first.
	_, statErr := os.Stat(s.path)
	writeHeader := errors.Is(statErr, fs.ErrNotExist)

	// O_APPEND makes every write go to the end of the file regardless
	// of other appends between open and write.
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return types.Registration{}, fmt.Errorf("AppendRegistration: open %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return types.Registration{}, fmt.Errorf("AppendRegistration: write header: %w", err)
		}
	}
	if err := w.Write([]string{rec.Name, rec.Mobile, rec.Course, rec.Timestamp}); err != nil {
		return types.Registration{}, fmt.Errorf("AppendRegistration: write row: %w", err)
	}

	// csv.Writer buffers; Flush pushes the row to the file and Error
	// reports anything Flush swallowed.
	w.Flush()
	if err := w.Error(); err != nil {
		return types.Registration{}, fmt.Errorf("AppendRegistration: flush: %w", err)
	}

	return rec, nil
}

// GetRegistrations reads the whole file back in insertion order.
// A missing file is not an error — it simply means nobody has
// registered yet, so the caller gets an empty (non-nil) slice.
func (s *CSVFile) GetRegistrations() ([]types.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []types.Registration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Tolerate short rows (e.g. a truncated final line) instead of
	// failing the whole read. Missing cells come back as "".
	r.FieldsPerRecord = -1

	head, err := r.Read()
	if err == io.EOF {
		// File exists but is empty — same as no registrations.
		return []types.Registration{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetRegistrations: read header: %w", err)
	}

	// Map column name → index so rows are decoded by name.
	cols := make(map[string]int, len(head))
	for i, name := range head {
		cols[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		if i, ok := cols[name]; ok && i < len(row) {
			return row[i]
		}
		return ""
	}

	regs := make([]types.Registration, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("GetRegistrations: read row: %w", err)
		}
		regs = append(regs, types.Registration{
			Name:      field(row, "name"),
			Mobile:    field(row, "mobile"),
			Course:    field(row, "course"),
			Timestamp: field(row, "timestamp"),
		})
	}

	return regs, nil
}
