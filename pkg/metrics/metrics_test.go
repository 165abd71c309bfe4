package metrics_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/metrics"
)

func TestRuleDone(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.RuleDone("semicolon", 2*time.Millisecond, 3, false)
	m.RuleDone("semicolon", time.Millisecond, 0, false)
	m.RuleDone("broken", time.Millisecond, 1, true)

	assert.InDelta(t, 2, testutil.ToFloat64(m.RuleRunsTotal.WithLabelValues("semicolon", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.RuleRunsTotal.WithLabelValues("broken", "failed")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.DiagnosticsTotal.WithLabelValues("semicolon")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.RuleDuration))
}

func TestFixCounters(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.Suppressed(2)
	m.Suppressed(0)
	m.PassDone(4, 1, 2)
	m.PassDone(1, 0, 0)
	m.FixDone(lint.StateStable, 2)
	m.FileDone("fixed")

	assert.InDelta(t, 2, testutil.ToFloat64(m.SuppressedTotal), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(m.FixesAcceptedTotal), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FixesConflictedTotal), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.FixesInvalidTotal), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.FilesTotal.WithLabelValues("fixed")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.FixPasses))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	m.RuleDone("eofline", time.Millisecond, 1, false)

	path := filepath.Join(t.TempDir(), "gotslint.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `gotslint_rule_runs_total{rule="eofline",status="ok"} 1`), text)
	assert.Contains(t, text, "# HELP gotslint_rule_duration_seconds")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	t.Parallel()

	err := metrics.New().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
}
