package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"reservoirmc/domain/core"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("RESERVOIR_SAMPLES", "500")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTornadoCmd_JSON(t *testing.T) {
	out, err := execute(t, "tornado", "--samples", "400", "--seed", "3", "--format", "json")
	require.NoError(t, err)

	ranked := gjson.Get(out, "ranked").Array()
	require.Len(t, ranked, 5)
	for i := 1; i < len(ranked); i++ {
		prev := ranked[i-1].Get("high").Float() - ranked[i-1].Get("low").Float()
		cur := ranked[i].Get("high").Float() - ranked[i].Get("low").Float()
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestPercentilesCmd_Text(t *testing.T) {
	out, err := execute(t, "percentiles", "--p", "5, 50,95")
	require.NoError(t, err)
	assert.Contains(t, out, "P5")
	assert.Contains(t, out, "P50")
	assert.Contains(t, out, "P95")
}

func TestPercentilesCmd_Invalid(t *testing.T) {
	_, err := execute(t, "percentiles", "--p", "150")
	require.Error(t, err)
	assert.True(t, core.IsInvalidPercentile(err))

	_, err = execute(t, "percentiles", "--p", "abc")
	assert.True(t, core.IsInvalidParameter(err))
}

func TestSCurveCmd_Downsamples(t *testing.T) {
	out, err := execute(t, "scurve", "--points", "10", "--format", "json")
	require.NoError(t, err)
	points := gjson.Parse(out).Array()
	assert.LessOrEqual(t, len(points), 10)
	assert.Equal(t, 1.0, points[len(points)-1].Get("probability").Float())
}

func TestSimulateCmd_Markdown(t *testing.T) {
	out, err := execute(t, "simulate", "--samples", "300", "--format", "markdown")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Recoverable volume simulation"))
}

func TestSimulateCmd_RejectsZeroSamples(t *testing.T) {
	_, err := execute(t, "simulate", "--samples", "0")
	require.Error(t, err)
	assert.True(t, core.IsInvalidParameter(err))
}

func TestRun_UsesCommandContext(t *testing.T) {
	t.Setenv("RESERVOIR_SAMPLES", "500")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, sub := range []string{"tornado", "simulate"} {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{sub})
		err := cmd.ExecuteContext(ctx)
		assert.ErrorIs(t, err, context.Canceled, sub)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := execute(t, "tornado", "--format", "html")
	assert.True(t, core.IsInvalidParameter(err))
	_, err = execute(t, "simulate", "--format", "yaml")
	assert.True(t, core.IsInvalidParameter(err))
}
