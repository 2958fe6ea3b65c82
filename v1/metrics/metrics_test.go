package metrics

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/cpunk/mongostd/v1/observability"
)

func TestObserveOperation(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	m.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "save",
		Resource:  "items",
		Duration:  5 * time.Millisecond,
		Size:      1,
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "save",
		Resource:  "items",
		Duration:  5 * time.Millisecond,
		Error:     errors.New("duplicate key"),
	})
	m.ObserveOperation(observability.OperationContext{
		Component: "mongo",
		Operation: "find_by",
		Resource:  "items",
		Duration:  time.Millisecond,
		Size:      3,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "save", "items", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationsTotal.WithLabelValues("mongo", "save", "items", "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.operationSize.WithLabelValues("mongo", "find_by")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.operationDuration))
}

func TestServiceLabelAndNamespace(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "inventory", Namespace: "shop"})
	m.IncrementRequests("success")

	expected := `
# HELP shop_requests_total Total number of processed requests
# TYPE shop_requests_total counter
shop_requests_total{service="inventory",status="success"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "shop_requests_total"))

	m.RecordRequestDuration(time.Now().Add(-time.Second), "/items")
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration, "shop_request_duration_seconds"))
}

func TestCreateCustomMetrics(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test"})

	c := m.CreateCounter("cache_hits_total", "Cache hits", []string{"cache"})
	c.WithLabelValues("items").Add(2)
	g := m.CreateGauge("pool_in_use", "Connections in use", nil)
	g.WithLabelValues().Set(4)
	h := m.CreateHistogram("batch_size", "Batch sizes", nil, []float64{1, 10, 100})
	h.WithLabelValues().Observe(12)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.WithLabelValues("items")))
	assert.Equal(t, 4.0, testutil.ToFloat64(g.WithLabelValues()))

	n, err := testutil.GatherAndCount(m.Registry, "cache_hits_total", "pool_in_use", "batch_size")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDefaultAddress(t *testing.T) {
	assert.Equal(t, DefaultMetricsAddress, NewMetrics(Config{}).Server.Addr)
	assert.Equal(t, ":9100", NewMetrics(Config{Address: ":9100"}).Server.Addr)
}

func TestFXModuleServesMetrics(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	var obs observability.Observer

	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config { return Config{Address: addr, ServiceName: "test"} }),
		fx.Populate(&obs),
	)
	app.RequireStart()
	defer app.RequireStop()

	obs.ObserveOperation(observability.OperationContext{Component: "mongo", Operation: "ping", Resource: "admin"})

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/metrics")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
}
