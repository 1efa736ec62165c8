package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"email-intake/internal/importer"
	"email-intake/internal/storage"
	"email-intake/internal/submission"
	"email-intake/internal/validator"
)

func testRecords() []storage.Submission {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []storage.Submission{
		{Name: "Jane", Email: "jane@example.com", Outcome: validator.Validate("jane@example.com"), ReceivedAt: at},
		{Name: "Bob", Email: "bad email", Outcome: validator.Validate("bad email"), ReceivedAt: at},
	}
}

func TestWriteSubmissions_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSubmissions(&buf, outputTable, testRecords()))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Jane")
	assert.Contains(t, out, "Valido")
	assert.Contains(t, out, "3 violations")
	assert.Contains(t, out, "2024-05-01T12:00:00Z")

	buf.Reset()
	require.NoError(t, writeSubmissions(&buf, outputTable, nil))
	assert.Equal(t, "No submissions found.\n", buf.String())
}

func TestWriteSubmissions_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSubmissions(&buf, outputJSON, testRecords()))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Valido", decoded[0]["errorMessages"])
	assert.Len(t, decoded[1]["errorMessages"], 3)

	buf.Reset()
	require.NoError(t, writeSubmissions(&buf, outputJSON, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestWriteSubmissions_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSubmissions(&buf, outputYAML, testRecords()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "Valido", decoded[0]["errorMessages"])
	assert.Equal(t, "Bob", decoded[1]["name"])
}

func TestImportPairs(t *testing.T) {
	store := storage.NewMemoryProvider()
	svc := submission.NewService(store)

	pairs := []importer.Pair{
		{Line: 2, Name: "Jane", Email: "jane@example.com"},
		{Line: 3, Name: "Bob", Email: "bad email"},
	}
	records, err := importPairs(context.Background(), svc, pairs)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Outcome.Valid())
	assert.False(t, records[1].Outcome.Valid())

	stored, err := store.ListSubmissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, stored)

	store.Close()
	_, err = importPairs(context.Background(), svc, pairs)
	assert.ErrorIs(t, err, storage.ErrClosed)
	assert.ErrorContains(t, err, "line 2")
}
