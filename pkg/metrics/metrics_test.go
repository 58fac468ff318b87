package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterCollectors(reg) })

	RepositoryOperations.WithLabelValues("reservations", "findOne", "not_found").Inc()
	require.Equal(t, 1.0, testutil.ToFloat64(RepositoryOperations.WithLabelValues("reservations", "findOne", "not_found")))

	n, err := testutil.GatherAndCount(reg, "sleepr_repository_operations_total")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// a second registration on the same registry is a programming error
	require.Panics(t, func() { RegisterCollectors(reg) })
}
