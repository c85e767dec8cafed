package encoding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.txt")

	require.NoError(t, WriteFile(path, []byte("hello")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, WriteFile(path, []byte("first version")))
	require.NoError(t, WriteFile(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestReadFile_Missing(t *testing.T) {
	data, err := ReadFile(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	err := WriteCSV(path, []string{"date", "issues", "closed", "age"}, [][]string{
		{"2021-Jan-01", "0", "0", ""},
		{"2021-Jan-02", "3", "1", "12"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "date,issues,closed,age\n2021-Jan-01,0,0,\n2021-Jan-02,3,1,12\n", string(data))
}

func TestAppendCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	header := []string{"timestamp", "Won't Fix"}

	require.NoError(t, AppendCSV(path, header, [][]string{{"t1", "1"}}))
	require.NoError(t, AppendCSV(path, header, [][]string{{"t2", "2"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,Won't Fix\nt1,1\nt2,2\n", string(data))
}

func TestAppendCSV_MissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,New\nt1,1"), 0o644))

	require.NoError(t, AppendCSV(path, []string{"timestamp", "New"}, [][]string{{"t2", "2"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,New\nt1,1\nt2,2\n", string(data))
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	require.NoError(t, WriteJSON(path, map[string]any{"b": 2, "a": nil}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": null,\n  \"b\": 2\n}\n", string(data))
}
