package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coursedesk/registrations-api/internal/config"
	"github.com/coursedesk/registrations-api/internal/types"
)

// setupTestStore returns a store backed by a file in a fresh temp dir,
// with the clock pinned so generated timestamps are predictable.
func setupTestStore(t *testing.T) *CSVFile {
	t.Helper()
	cfg := &config.Config{
		StoragePath: filepath.Join(t.TempDir(), "registrations.csv"),
	}
	store := New(cfg)
	store.now = func() time.Time {
		return time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)
	}
	return store
}

func TestAppendRegistration_CreatesFileWithHeader(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AppendRegistration(types.Registration{
		Name: "Asha", Mobile: "9876543210", Course: "Go Basics",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 2, "expected header plus one data row")
	require.Equal(t, "name,mobile,course,timestamp", lines[0])
}

func TestAppendRegistration_StampsServerTimestamp(t *testing.T) {
	store := setupTestStore(t)

	// A client-supplied timestamp must be discarded.
	stored, err := store.AppendRegistration(types.Registration{
		Name: "Asha", Mobile: "9876543210", Course: "Go Basics",
		Timestamp: "1999-01-01 00:00:00",
	})
	require.NoError(t, err)
	require.Equal(t, "2026-08-31 12:30:45", stored.Timestamp)
}

func TestAppendRegistration_HeaderWrittenOnlyOnce(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := store.AppendRegistration(types.Registration{
			Name: "Asha", Mobile: "123", Course: "X",
		})
		require.NoError(t, err)
	}

	raw, err := os.ReadFile(store.path)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(raw), "name,mobile,course"),
		"header must appear exactly once")
	require.Len(t, strings.Split(strings.TrimRight(string(raw), "\n"), "\n"), 4)
}

func TestGetRegistrations_MissingFileIsEmptyNotError(t *testing.T) {
	store := setupTestStore(t)

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.NotNil(t, regs)
	require.Empty(t, regs)
}

func TestGetRegistrations_RoundTripAndOrder(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AppendRegistration(types.Registration{Name: "A", Mobile: "123", Course: "X"})
	require.NoError(t, err)
	_, err = store.AppendRegistration(types.Registration{Name: "B", Mobile: "456", Course: "Y"})
	require.NoError(t, err)

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Len(t, regs, 2)

	// Insertion order, fields verbatim, timestamp generated.
	require.Equal(t, "A", regs[0].Name)
	require.Equal(t, "123", regs[0].Mobile)
	require.Equal(t, "X", regs[0].Course)
	require.Equal(t, "2026-08-31 12:30:45", regs[0].Timestamp)
	require.Equal(t, "B", regs[1].Name)
	require.Equal(t, "Y", regs[1].Course)
}

func TestGetRegistrations_ReadIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AppendRegistration(types.Registration{Name: "A", Mobile: "1", Course: "X"})
	require.NoError(t, err)
	_, err = store.AppendRegistration(types.Registration{Name: "B", Mobile: "2", Course: "Y"})
	require.NoError(t, err)

	first, err := store.GetRegistrations()
	require.NoError(t, err)
	second, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGetRegistrations_DuplicateSubmissionsKept(t *testing.T) {
	store := setupTestStore(t)

	rec := types.Registration{Name: "A", Mobile: "123", Course: "X"}
	_, err := store.AppendRegistration(rec)
	require.NoError(t, err)
	_, err = store.AppendRegistration(rec)
	require.NoError(t, err)

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Len(t, regs, 2, "no deduplication: duplicates produce duplicate rows")
}

func TestAppendRegistration_QuotesSurviveCSV(t *testing.T) {
	store := setupTestStore(t)

	rec := types.Registration{
		Name:   `O'Brien, "Paddy"`,
		Mobile: "+91 98765-43210",
		Course: "Go, Advanced",
	}
	_, err := store.AppendRegistration(rec)
	require.NoError(t, err)

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Len(t, regs, 1)
	require.Equal(t, rec.Name, regs[0].Name)
	require.Equal(t, rec.Course, regs[0].Course)
}

func TestGetRegistrations_ColumnsResolvedByHeaderName(t *testing.T) {
	store := setupTestStore(t)

	// A hand-edited file with reordered columns must still load.
	content := "course,name,timestamp,mobile\n" +
		"Go Basics,Asha,2026-08-31 12:30:45,9876543210\n"
	require.NoError(t, os.WriteFile(store.path, []byte(content), 0o644))

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Len(t, regs, 1)
	require.Equal(t, "Asha", regs[0].Name)
	require.Equal(t, "9876543210", regs[0].Mobile)
	require.Equal(t, "Go Basics", regs[0].Course)
	require.Equal(t, "2026-08-31 12:30:45", regs[0].Timestamp)
}

func TestGetRegistrations_EmptyFileIsEmpty(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, os.WriteFile(store.path, nil, 0o644))

	regs, err := store.GetRegistrations()
	require.NoError(t, err)
	require.Empty(t, regs)
}
