package report

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"reservoirmc/domain/core"
	"reservoirmc/internal/testkit"
	"reservoirmc/ports"
)

func testReport(t *testing.T) *ports.SimulationReport {
	t.Helper()
	r, err := testkit.NewTestKit().Report(context.Background(), 1000, 1234)
	require.NoError(t, err)
	return r
}

func TestForFormat(t *testing.T) {
	for _, f := range Formats() {
		r, err := ForFormat(f)
		require.NoError(t, err, f)
		assert.NotEmpty(t, r.ContentType())
	}

	r, err := ForFormat("")
	require.NoError(t, err)
	assert.IsType(t, TextRenderer{}, r)

	_, err = ForFormat("xlsx")
	assert.True(t, core.IsInvalidParameter(err))
}

func TestTextRenderer(t *testing.T) {
	r := testReport(t)

	var buf bytes.Buffer
	require.NoError(t, TextRenderer{}.Render(context.Background(), &buf, r))

	out := buf.String()
	assert.Contains(t, out, "Total recoverable volume")
	assert.Contains(t, out, "Sensitivity")
	for _, label := range r.Labels {
		assert.Contains(t, out, label)
	}
	// Most influential variable is listed first
	first := strings.Index(out, string(r.Ranked[0].Name))
	last := strings.Index(out, string(r.Ranked[len(r.Ranked)-1].Name))
	assert.Less(t, first, last)
}

func TestJSONRenderer(t *testing.T) {
	r := testReport(t)

	var buf bytes.Buffer
	require.NoError(t, JSONRenderer{}.Render(context.Background(), &buf, r))

	doc := buf.Bytes()
	assert.Equal(t, int64(1000), gjson.GetBytes(doc, "manifest.samples").Int())
	assert.Equal(t, int64(5), gjson.GetBytes(doc, "tornado.#").Int())
	assert.Equal(t, "Area", gjson.GetBytes(doc, "tornado.0.name").String())
	assert.InDelta(t, r.JointSummary.P50, gjson.GetBytes(doc, "joint_summary.p50").Float(), 1e-6)
	assert.True(t, gjson.GetBytes(doc, "s_curve.0.probability").Exists())
}

func TestMarkdownAndHTML(t *testing.T) {
	r := testReport(t)

	md := Markdown(r)
	assert.Contains(t, md, "# Recoverable volume simulation")
	assert.Contains(t, md, "| Rank | Variable |")

	page := string(HTML(r, true))
	assert.Contains(t, page, "<html")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "Recoverable volume simulation")

	fragment := string(HTML(r, false))
	assert.NotContains(t, fragment, "<html")
	assert.Contains(t, fragment, "<table>")

	var buf bytes.Buffer
	require.NoError(t, HTMLRenderer{}.Render(context.Background(), &buf, r))
	assert.Equal(t, page, buf.String())
}
