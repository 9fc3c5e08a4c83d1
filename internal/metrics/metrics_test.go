package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMetrics(t *testing.T) {
	m := NewStoreMetrics("test_service")
	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(m.Operations))
	require.NoError(t, registry.Register(m.Duration))
	require.NoError(t, registry.Register(m.Users))

	assert.Len(t, m.Collectors(), 3)
}

func TestStoreMetrics_Observe(t *testing.T) {
	m := NewStoreMetrics("test_service")

	m.Observe("file", "load", nil, 10*time.Millisecond)
	m.Observe("file", "load", nil, 20*time.Millisecond)
	m.Observe("file", "save", errors.New("disk full"), time.Millisecond)
	m.SetUsers("file", 4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("file", "load", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("file", "save", OutcomeError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Operations.WithLabelValues("file", "save", OutcomeSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Users.WithLabelValues("file")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Duration))
}
