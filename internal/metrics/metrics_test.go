package metrics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ericlevine/qrdecode"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "decoded"},
		{qrdecode.ErrNotFound, "not_found"},
		{fmt.Errorf("block 1: %w", qrdecode.ErrChecksum), "checksum"},
		{fmt.Errorf("wrapped: %w", qrdecode.ErrFormat), "format"},
		{errors.New("unexpected EOF"), "error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "%v", tt.err)
	}
}

func TestScanCounters(t *testing.T) {
	s := NewScan()
	s.ObserveDecoded(5*time.Millisecond, "Q", 2)
	s.ObserveDecoded(time.Millisecond, "Q", 0)
	s.ObserveFailed(time.Millisecond, qrdecode.ErrNotFound)
	s.ObserveCrossCheck("match")

	assert.InDelta(t, 2, testutil.ToFloat64(s.filesTotal.WithLabelValues("decoded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(s.filesTotal.WithLabelValues("not_found")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(s.versions.WithLabelValues("Q")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(s.crossCheck.WithLabelValues("match")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(s.decodeDuration))
}

func TestWriteToTextfile(t *testing.T) {
	s := NewScan()
	s.ObserveDecoded(time.Millisecond, "M", 1)

	path := filepath.Join(t.TempDir(), "qrdecode.prom")
	require.NoError(t, s.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `qrdecode_files_total{status="decoded"} 1`)
	assert.Contains(t, string(data), `qrdecode_symbols_total{ecc="M"} 1`)
	assert.Contains(t, string(data), "qrdecode_decode_duration_seconds_count 1")
}
