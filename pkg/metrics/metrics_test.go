package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResultLabel(t *testing.T) {
	assert.Equal(t, ResultSuccess, ResultLabel(nil))
	assert.Equal(t, ResultFailure, ResultLabel(errors.New("boom")))
}

func TestCountersAreRegistered(t *testing.T) {
	before := testutil.ToFloat64(ChunksTotal.WithLabelValues(ResultSuccess))
	ChunksTotal.WithLabelValues(ResultSuccess).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ChunksTotal.WithLabelValues(ResultSuccess)))

	assert.GreaterOrEqual(t, testutil.CollectAndCount(ChunksTotal), 1)
}
