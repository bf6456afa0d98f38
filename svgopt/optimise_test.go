package svgopt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benoitkugler/svgoptim/svgjobs"
)

const iconInput = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<!-- Generator: editor -->
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="32" viewBox="0 0 200 100" class="">
<title>Icon</title><desc>An icon</desc><metadata><rdf/></metadata>
<!--! keep this notice -->
<rect x="1" y="1" width="10" height="10" fill=""/>
</svg>`

func TestOptimiseDefault(t *testing.T) {
	res, err := Optimise(iconInput, nil)
	require.NoError(t, err)
	assert.Equal(t, `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="32" viewBox="0 0 200 100">`+
		"\n\n<!--! keep this notice -->\n"+`<rect x="1" y="1" width="10" height="10"/>`+"\n</svg>", res.Data)
	assert.Equal(t, &svgjobs.Dimensions{Width: 64, Height: 32}, res.Dimensions)
}

func TestOptimiseNoJobs(t *testing.T) {
	config := Config{Custom: svgjobs.DefaultConfig()}
	res, err := Optimise(`<svg viewBox="0 0 200 100"><!-- c --><title>t</title></svg>`, &config)
	require.NoError(t, err)
	assert.Equal(t, `<svg viewBox="0 0 200 100"><!-- c --><title>t</title></svg>`, res.Data)
	assert.Equal(t, &svgjobs.Dimensions{Width: 200, Height: 100}, res.Dimensions)
}

func TestOptimiseRemoveDimensions(t *testing.T) {
	config := DefaultConfig()
	config.Jobs.RemoveDimensions = true

	res, err := Optimise(`<svg width="64" height="32" viewBox="0 0 200 100"/>`, &config)
	require.NoError(t, err)
	assert.Equal(t, `<svg viewBox="0 0 200 100"/>`, res.Data)
	// the dimensions describe the optimised document
	assert.Equal(t, &svgjobs.Dimensions{Width: 200, Height: 100}, res.Dimensions)

	// without a viewBox, the dimensions are kept
	res, err = Optimise(`<svg width="64" height="32"/>`, &config)
	require.NoError(t, err)
	assert.Equal(t, &svgjobs.Dimensions{Width: 64, Height: 32}, res.Dimensions)
}

func TestOptimiseScripts(t *testing.T) {
	config := DefaultConfig()
	config.Jobs.RemoveScripts = true
	res, err := Optimise(`<svg><script>alert(1)</script><g><script/></g></svg>`, &config)
	require.NoError(t, err)
	assert.Equal(t, `<svg><g/></svg>`, res.Data)
	assert.Nil(t, res.Dimensions)
}

func TestOptimisePretty(t *testing.T) {
	config := DefaultConfig()
	config.Pretty = true
	res, err := Optimise(`<svg width="1" height="2"><g><rect/></g></svg>`, &config)
	require.NoError(t, err)
	assert.Equal(t, "<svg width=\"1\" height=\"2\">\n  <g>\n    <rect/>\n  </g>\n</svg>", res.Data)
}

func TestOptimiseScenarios(t *testing.T) {
	tests := []struct {
		input string
		want  *svgjobs.Dimensions
	}{
		{`<svg width="64" height="32"/>`, &svgjobs.Dimensions{Width: 64, Height: 32}},
		{`<svg viewBox="0 0 200 100"/>`, &svgjobs.Dimensions{Width: 200, Height: 100}},
		{`<svg width="64" height="32" viewBox="0 0 200 100"/>`, &svgjobs.Dimensions{Width: 64, Height: 32}},
		{`<svg/>`, nil},
		{`<html><body/></html>`, nil},
		{`<svg width="abc" height="32"/>`, nil},
		{``, nil},
	}
	for _, tt := range tests {
		res, err := Optimise(tt.input, nil)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, res.Dimensions, tt.input)

		dims, err := GetDimensions(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, dims, tt.input)
	}
}

func TestOptimiseParseError(t *testing.T) {
	res, err := Optimise(`<svg><g></svg>`, nil)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse svg: "))

	_, err = GetDimensions(`<svg>`)
	assert.Error(t, err)
}

func TestGetDimensionsDoesNotOptimise(t *testing.T) {
	dims, err := GetDimensions(`<svg width="3" height="4"><title/></svg>`)
	require.NoError(t, err)
	assert.Equal(t, &svgjobs.Dimensions{Width: 3, Height: 4}, dims)
}

func TestResultJSON(t *testing.T) {
	out, err := json.Marshal(Result{Data: "<svg/>"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"<svg/>","dimensions":null}`, string(out))

	out, err = json.Marshal(Result{Data: "<svg/>", Dimensions: &svgjobs.Dimensions{Width: 1, Height: 2.5}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"<svg/>","dimensions":{"width":1,"height":2.5}}`, string(out))
}

func TestConfigJSONKeepsDefaults(t *testing.T) {
	config := DefaultConfig()
	err := json.Unmarshal([]byte(`{"jobs":{"removeTitle":false},"pretty":true}`), &config)
	require.NoError(t, err)
	assert.False(t, config.Jobs.RemoveTitle)
	assert.True(t, config.Jobs.RemoveComments)
	assert.True(t, config.Custom.ExtractDimensions)
	assert.True(t, config.Pretty)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := Optimiser{Config: DefaultConfig(), Metrics: NewMetrics(reg)}

	_, err := o.Optimise(`<svg width="1" height="2"/>`)
	require.NoError(t, err)
	_, err = o.Optimise(`<svg/>`)
	require.NoError(t, err)
	_, err = o.Optimise(`<svg>`)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(o.Metrics.documents.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Metrics.documents.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Metrics.dimensions.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.Metrics.dimensions.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(o.Metrics.jobsRun.WithLabelValues("custom")))
	// 7 default optimisations, for 2 documents
	assert.Equal(t, 14.0, testutil.ToFloat64(o.Metrics.jobsRun.WithLabelValues("builtin")))
}
