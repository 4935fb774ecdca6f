package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testPlacements(t *testing.T) []PlacementReport {
	t.Helper()

	var reports []PlacementReport
	for _, anchor := range []placement.Anchor{placement.NW, placement.SE} {
		req := placement.Request{
			Anchor:        anchor,
			Margin:        1,
			ParentWidth:   80,
			ParentHeight:  24,
			WidthFraction: 0.33,
		}
		res, err := placement.ResolveRequest(req)
		require.NoError(t, err)
		reports = append(reports, NewPlacementReport(req, res, 1))
	}
	return reports
}

func testFits() []FitReport {
	return []FitReport{
		{Text: "hello", Available: 10, Measure: "cells", Result: "hello", Width: 5},
		{Text: "hello brave new world", Available: 12, Measure: "cells", Result: "hello...", Width: 8, Truncated: true},
	}
}

func TestNewPlacementReport(t *testing.T) {
	reports := testPlacements(t)

	nw := reports[0]
	assert.Equal(t, placement.NW, nw.Anchor)
	assert.Equal(t, 1.0, nw.X)
	assert.Equal(t, 1.0, nw.Y)
	assert.Equal(t, 26, nw.AlertWidth)
	assert.Equal(t, 1, nw.Left)
	assert.Equal(t, 1, nw.Top)

	se := reports[1]
	assert.Equal(t, 79.0, se.X)
	assert.Equal(t, 23.0, se.Y)
	assert.Equal(t, 53, se.Left)
	assert.Equal(t, 22, se.Top)
	assert.Equal(t, 80, se.ParentWidth)
	assert.Equal(t, 0.33, se.WidthFraction)
}

func TestPlainFormatter_FormatPlacements(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{})
	err := formatter.FormatPlacements(&buf, testPlacements(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "nw     x=1 y=1 width=26 left=1 top=1", lines[0])
	assert.Equal(t, "se     x=79 y=23 width=26 left=53 top=22", lines[1])
}

func TestPlainFormatter_Verbose(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{Verbose: true})
	require.NoError(t, formatter.FormatPlacements(&buf, testPlacements(t)[:1]))
	assert.Contains(t, buf.String(), "(parent=80x24 margin=1 fraction=0.33)")

	buf.Reset()
	require.NoError(t, formatter.FormatFits(&buf, testFits()[1:]))
	assert.Equal(t, "hello... (8/12 cells)\n", buf.String())
}

func TestPlainFormatter_FormatFits(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{})
	err := formatter.FormatFits(&buf, testFits())
	require.NoError(t, err)

	assert.Equal(t, "hello\nhello...\n", buf.String())
}

func TestPlainFormatter_Template(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{Template: "{{.Anchor}} {{.Left}},{{.Top}}"})
	err := formatter.FormatPlacements(&buf, testPlacements(t))
	require.NoError(t, err)

	assert.Equal(t, "nw 1,1\nse 53,22\n", buf.String())

	buf.Reset()
	formatter = NewPlainFormatter(FormatterOptions{Template: "{{if .Truncated}}cut{{else}}ok{{end}}"})
	require.NoError(t, formatter.FormatFits(&buf, testFits()))
	assert.Equal(t, "ok\ncut\n", buf.String())
}

func TestPlainFormatter_InvalidTemplate(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{Template: "{{.Anchor"})
	require.NoError(t, formatter.FormatFits(&buf, testFits()[:1]))
	assert.Equal(t, "hello\n", buf.String())
}

func TestPlainFormatter_TemplateError(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(FormatterOptions{Template: "{{.Missing}}"})
	err := formatter.FormatFits(&buf, testFits())
	assert.Error(t, err)
}

func TestJSONFormatter_FormatPlacements(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(FormatterOptions{})
	err := formatter.FormatPlacements(&buf, testPlacements(t))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "se", decoded[1]["anchor"])
	assert.Equal(t, float64(53), decoded[1]["left"])
	assert.Equal(t, float64(26), decoded[1]["alert_width"])
	assert.Contains(t, buf.String(), "\n  ")
}

func TestJSONFormatter_FormatFits(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(FormatterOptions{})
	err := formatter.FormatFits(&buf, testFits())
	require.NoError(t, err)

	var decoded []FitReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testFits(), decoded)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewJSONFormatter(FormatterOptions{})
	require.NoError(t, formatter.FormatFits(&buf, []FitReport{}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_FormatPlacements(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewYAMLFormatter(FormatterOptions{})
	err := formatter.FormatPlacements(&buf, testPlacements(t))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "- anchor: nw")
	assert.Contains(t, buf.String(), "parent_height: 24")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 22, decoded[1]["top"])
}

func TestYAMLFormatter_FormatFits(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewYAMLFormatter(FormatterOptions{})
	err := formatter.FormatFits(&buf, testFits())
	require.NoError(t, err)

	var decoded []FitReport
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testFits(), decoded)
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format   FormatType
		expected any
	}{
		{FormatPlain, &PlainFormatter{}},
		{FormatJSON, &JSONFormatter{}},
		{FormatYAML, &YAMLFormatter{}},
		{"unknown", &PlainFormatter{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			formatter := NewFormatter(tt.format, FormatterOptions{})
			assert.IsType(t, tt.expected, formatter)
		})
	}
}

func TestFormatTypes(t *testing.T) {
	assert.Equal(t, []FormatType{FormatPlain, FormatJSON, FormatYAML}, FormatTypes())
}
