package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// captureStdout redirects package output into a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	orig := Stdout
	Stdout = buf
	t.Cleanup(func() { Stdout = orig })
	return buf
}

func TestSuccess(t *testing.T) {
	buf := captureStdout(t)
	Success("seeded %d genres", 15)
	assert.Contains(t, buf.String(), "seeded 15 genres")
}

func TestKeyValue(t *testing.T) {
	buf := captureStdout(t)
	KeyValue("Pending books", "12")
	assert.Contains(t, buf.String(), "Pending books")
	assert.Contains(t, buf.String(), "12")
}

func TestTable(t *testing.T) {
	buf := captureStdout(t)
	Table(
		[]string{"Book ID", "Status"},
		[][]string{{"42", "pending"}, {"43", "approved"}},
	)

	out := buf.String()
	assert.Contains(t, out, "Book ID")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "approved")
}

func TestTableEmptyHeaders(t *testing.T) {
	buf := captureStdout(t)
	Table(nil, [][]string{{"ignored"}})
	assert.Empty(t, buf.String())
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status string
	}{
		{"approved"},
		{"pending"},
		{"rejected"},
		{"unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			badge := StatusBadge(tt.status)
			assert.True(t, strings.Contains(badge, tt.status))
		})
	}
}

func TestList(t *testing.T) {
	buf := captureStdout(t)
	List([]string{"Fantasy", "Mystery"})
	assert.Contains(t, buf.String(), "Fantasy")
	assert.Contains(t, buf.String(), "Mystery")
}
