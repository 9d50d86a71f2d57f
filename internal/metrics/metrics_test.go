package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/atharv3903/roadtrip/internal/algo"
	"github.com/atharv3903/roadtrip/internal/model"
)

func TestObserveRoute(t *testing.T) {
	found := RouteQueries.WithLabelValues("found", "scan")
	self := RouteQueries.WithLabelValues("self", "scan")
	none := RouteQueries.WithLabelValues("no_route", "scan")
	before := [3]float64{testutil.ToFloat64(found), testutil.ToFloat64(self), testutil.ToFloat64(none)}

	ObserveRoute(algo.Scan, algo.Result{Route: model.Route{"A", "B"}, Found: true, Explored: 2}, time.Millisecond)
	ObserveRoute(algo.Scan, algo.Result{Route: model.Route{"A", "A"}, Found: true}, time.Microsecond)
	ObserveRoute(algo.Scan, algo.Result{Explored: 1}, time.Microsecond)

	assert.Equal(t, before[0]+1, testutil.ToFloat64(found))
	assert.Equal(t, before[1]+1, testutil.ToFloat64(self))
	assert.Equal(t, before[2]+1, testutil.ToFloat64(none))
}

func TestObserveMutation(t *testing.T) {
	ok := SegmentMutations.WithLabelValues("remove", "ok")
	failed := SegmentMutations.WithLabelValues("remove", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveMutation("remove", nil)
	ObserveMutation("remove", errors.New("missing"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}
