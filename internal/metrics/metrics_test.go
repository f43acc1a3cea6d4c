package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAttempt(t *testing.T) {
	m := New()
	m.Attempt("login", ResultOK)
	m.Attempt("login", ResultOK)
	m.Attempt("register", ResultConflict)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("login", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttempts.WithLabelValues("register", ResultConflict)))

	var nilMetrics *Metrics
	nilMetrics.Attempt("login", ResultOK)
	nilMetrics.ObserveStore("create", 0.1)
}
