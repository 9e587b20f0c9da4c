package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/codec"
)

var rowSchema = codec.Schema{
	Fields: []codec.Field{
		{Name: "id", Type: codec.FieldString},
		{Name: "note", Type: codec.FieldString},
		{Name: "amount", Type: codec.FieldMoney},
	},
}

func fixedPrecision(p int) (codec.RowPrecision, codec.RecordPrecision) {
	return func(map[string]string) int { return p }, func(codec.Record) int { return p }
}

func TestReadFileMissing(t *testing.T) {
	rowPrec, _ := fixedPrecision(2)
	records, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), rowSchema, rowPrec)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadFileHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,note,amount\n"), 0o600))

	rowPrec, _ := fixedPrecision(2)
	records, err := ReadFile(path, rowSchema, rowPrec)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	rowPrec, recPrec := fixedPrecision(2)
	records := []codec.Record{
		{"id": "1", "note": "plain", "amount": int64(1234)},
		{"id": "2", "note": "has,comma and \"quotes\"\nand a newline", "amount": int64(-50)},
	}

	require.NoError(t, WriteFile(path, rowSchema, records, recPrec))

	got, err := ReadFile(path, rowSchema, rowPrec)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	_, recPrec := fixedPrecision(2)

	require.NoError(t, WriteFile(path, rowSchema, []codec.Record{{"id": "1"}}, recPrec))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rows.csv", entries[0].Name())
}

func TestWriteFileFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rows.csv")
	rowPrec, recPrec := fixedPrecision(2)
	original := []codec.Record{{"id": "1", "note": "keep me", "amount": int64(10)}}
	require.NoError(t, WriteFile(path, rowSchema, original, recPrec))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// The temp file is created in the target's directory, so a bogus target
	// directory fails before anything is replaced.
	err = WriteFile(filepath.Join(dir, "missing", "rows.csv"), rowSchema, nil, recPrec)
	require.Error(t, err)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "original file must stay byte-identical")

	got, err := ReadFile(path, rowSchema, rowPrec)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}

func TestReadFileOldFormatMigrates(t *testing.T) {
	// A file written before the amount column existed, with a column the
	// schema no longer carries.
	path := filepath.Join(t.TempDir(), "rows.csv")
	content := "id,note,obsolete\n1,hello,x\n2,world,y\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rowPrec, _ := fixedPrecision(2)
	records, err := ReadFile(path, rowSchema, rowPrec)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, codec.Record{"id": "1", "note": "hello", "amount": int64(0)}, records[0])
}

func TestAppendRecords(t *testing.T) {
	rowPrec, recPrec := fixedPrecision(2)

	t.Run("appends to an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rows.csv")
		first := []codec.Record{{"id": "1", "note": "a", "amount": int64(1)}}
		require.NoError(t, WriteFile(path, rowSchema, first, recPrec))

		more := []codec.Record{
			{"id": "2", "note": "b", "amount": int64(2)},
			{"id": "3", "note": "c", "amount": int64(3)},
		}
		require.NoError(t, AppendRecords(path, rowSchema, more, recPrec))

		got, err := ReadFile(path, rowSchema, rowPrec)
		require.NoError(t, err)
		assert.Equal(t, append(first, more...), got)
	})

	t.Run("falls back to a full write when the file is missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rows.csv")
		records := []codec.Record{{"id": "1", "note": "a", "amount": int64(1)}}
		require.NoError(t, AppendRecords(path, rowSchema, records, recPrec))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "id,note,amount\n"), "fallback must write the header")

		got, err := ReadFile(path, rowSchema, rowPrec)
		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("repairs a missing trailing newline before appending", func(t *testing.T) {
		// A hand-edited file often loses its final newline; the appended row
		// must not fuse with the last existing one.
		path := filepath.Join(t.TempDir(), "rows.csv")
		require.NoError(t, os.WriteFile(path, []byte("id,note,amount\n1,a,0.01"), 0o600))

		more := []codec.Record{{"id": "2", "note": "b", "amount": int64(2)}}
		require.NoError(t, AppendRecords(path, rowSchema, more, recPrec))

		got, err := ReadFile(path, rowSchema, rowPrec)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, codec.Record{"id": "1", "note": "a", "amount": int64(1)}, got[0])
		assert.Equal(t, more[0], got[1])
	})

	t.Run("no records is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rows.csv")
		require.NoError(t, AppendRecords(path, rowSchema, nil, recPrec))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})
}
