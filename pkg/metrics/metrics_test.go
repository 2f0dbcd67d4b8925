package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("randevu-test", reg)

	m.ObserveHTTPRequest("GET", "/api/v1/staff/{staffId}/available-slots", "200", 10*time.Millisecond)
	m.ObserveDBQuery("query", time.Millisecond, errors.New("boom"))
	m.IncAppointments("created")
	m.IncAppointments("created")
	m.ObserveSlotsGenerated(7)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("GET", "/api/v1/staff/{staffId}/available-slots", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("query")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.appointmentsCreated.WithLabelValues("created")))

	expected := `
# HELP randevu_db_connections Database connection pool state
# TYPE randevu_db_connections gauge
randevu_db_connections{service="randevu-test",state="idle"} 3
randevu_db_connections{service="randevu-test",state="in_use"} 2
randevu_db_connections{service="randevu-test",state="open"} 5
`
	m.SetDBConnections(5, 2, 3)
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "randevu_db_connections"))
}
