package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAnswer(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAnswer(true)
	m.ObserveAnswer(false)
	m.ObserveAnswer(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues(ResultCorrect)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Answers.WithLabelValues(ResultIncorrect)))
}

func TestObserveLoad(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLoad("file", 20*time.Millisecond, 12, nil)
	m.ObserveLoad("file", time.Millisecond, 0, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLoads.WithLabelValues("file", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogLoads.WithLabelValues("file", "error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.CatalogRecords), "failed load keeps the last count")
}
