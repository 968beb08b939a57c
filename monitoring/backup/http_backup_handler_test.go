package backup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-rewards/testing/assert"
)

type mockExporter struct {
	outputDir string
	overwrite bool
	err       error
}

func (m *mockExporter) Backup(_ context.Context, outputDir string, overwrite bool) error {
	m.outputDir = outputDir
	m.overwrite = overwrite
	return m.err
}

func TestHandler(t *testing.T) {
	exporter := &mockExporter{}
	h := Handler(exporter, "/tmp/backups")

	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/db/backup?overwrite", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	assert.Equal(t, "/tmp/backups", exporter.outputDir)
	assert.Equal(t, true, exporter.overwrite)

	exporter.err = errors.New("disk full")
	rr = httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, "/db/backup", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, false, exporter.overwrite)
}
