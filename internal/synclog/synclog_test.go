package synclog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := New(dir)
	ts := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	e1 := Entry{Timestamp: ts, RunID: "r1", Company: "acme", Action: ActionSynced, Details: "year 2025", Rows: 42}
	e2 := Entry{Timestamp: ts.Add(time.Minute), RunID: "r1", Company: "beta", Action: ActionFailed, Details: "auth, 401", Rows: 0}
	require.NoError(t, l.Append(e1))
	require.NoError(t, l.Append(e2))

	entries, err := l.Read()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, e1, entries[0])
	assert.Equal(t, e2, entries[1])

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
	assert.True(t, strings.HasPrefix(string(data), Header+"\n"))
}

func TestRead_Missing(t *testing.T) {
	entries, err := New(t.TempDir()).Read()
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestMarshalEntry(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))
	row := MarshalEntry(Entry{Timestamp: ts, RunID: "x", Company: "c", Action: ActionEmpty, Rows: 0})
	assert.Equal(t, []string{"2025-01-02T02:04:05Z", "x", "c", "empty", "", "0"}, row)
}

func TestUnmarshalEntry_Errors(t *testing.T) {
	_, err := UnmarshalEntry([]string{"a"})
	assert.ErrorContains(t, err, "expected 6 fields")

	_, err = UnmarshalEntry([]string{"yesterday", "r", "c", "a", "d", "1"})
	assert.ErrorContains(t, err, "parsing timestamp")

	_, err = UnmarshalEntry([]string{"2025-01-02T02:04:05Z", "r", "c", "a", "d", "many"})
	assert.ErrorContains(t, err, "parsing rows")
}

func TestReadEntries_BadRow(t *testing.T) {
	input := Header + "\n2025-01-02T02:04:05Z,r,c,a,d,x\n"
	_, err := ReadEntries(strings.NewReader(input))
	assert.ErrorContains(t, err, "row 2")
}

func TestAppend_Concurrent(t *testing.T) {
	l := New(t.TempDir())
	ts := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Append(Entry{Timestamp: ts, RunID: "r", Company: fmt.Sprintf("c%d", i), Action: ActionSynced}))
		}()
	}
	wg.Wait()

	entries, err := l.Read()
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
