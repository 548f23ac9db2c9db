package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveTransition("company", "admin")
	m.ObserveTransition("company", "admin")
	m.IncrementValidationFailure("cnpj")
	m.ObserveSubmission(time.Now(), nil)
	m.ObserveSubmission(time.Now(), errors.New("boom"))
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StepTransitions.WithLabelValues("company", "admin")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues("cnpj")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveSessions))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SubmitDuration))

	var sample dto.Metric
	require.NoError(t, m.SubmitDuration.(prometheus.Metric).Write(&sample))
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("company", "admin")
		m.IncrementValidationFailure("cnpj")
		m.ObserveSubmission(time.Now(), nil)
		m.SessionOpened()
		m.SessionClosed()
	})
}
