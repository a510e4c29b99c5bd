package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"noticeboard/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewManager(reg)

	m.DraftOpened()
	m.DraftOpened()
	m.DraftMutation("add_event", nil)
	m.DraftMutation("delete_event", errors.New("out of range"))
	m.Submission(metrics.ResultAccepted)
	m.TopicCache(true)
	m.TopicCache(false)
	m.ObserveHTTP("GET", "/api/v1/topics", 200, 5*time.Millisecond)

	expected := `
# HELP noticeboard_drafts_opened_total Drafts opened.
# TYPE noticeboard_drafts_opened_total counter
noticeboard_drafts_opened_total 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "noticeboard_drafts_opened_total"))

	count, err := testutil.GatherAndCount(reg, "noticeboard_drafts_mutations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "noticeboard_topics_cache_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "noticeboard_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestManager_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.NewNop()
		metrics.NewNop()
	})
}
