package input

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/alertkit/internal/alert"
	"github.com/jmylchreest/alertkit/internal/placement"
	"github.com/jmylchreest/alertkit/internal/theme"
)

func readAll(t *testing.T, input string) ([]Request, error) {
	t.Helper()
	var reqs []Request
	err := NewJSONLinesAdapter(strings.NewReader(input)).Read(context.Background(), func(r Request) error {
		reqs = append(reqs, r)
		return nil
	})
	return reqs, err
}

func TestJSONLinesAdapter_Read(t *testing.T) {
	input := `{"key":"build","text":"Build started","type":"info"}

plain text line
{"key":"build","text":"Build failed","type":"error","anchor":"bottom-right","duration":"5s"}
{"key":"build","dismiss":true}
`
	reqs, err := readAll(t, input)
	require.NoError(t, err)
	require.Len(t, reqs, 4)

	assert.Equal(t, Request{Key: "build", Text: "Build started", Type: "info"}, reqs[0])
	assert.Equal(t, Request{Text: "plain text line"}, reqs[1])
	assert.Equal(t, "bottom-right", reqs[2].Anchor)
	assert.True(t, reqs[3].Dismiss)
}

func TestJSONLinesAdapter_InvalidLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", "ok\n{\"text\": \n"},
		{"unknown field", `{"text":"x","colour":"red"}`},
		{"empty text", `{"type":"info"}`},
		{"dismiss without key", `{"dismiss":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readAll(t, tt.input)
			var adapterErr *AdapterError
			require.ErrorAs(t, err, &adapterErr)
			assert.Equal(t, "stdin", adapterErr.Source)
		})
	}
}

func TestJSONLinesAdapter_ReportsLineNumber(t *testing.T) {
	_, err := readAll(t, "one\ntwo\n{bad\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestJSONLinesAdapter_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := NewJSONLinesAdapter(strings.NewReader("a\nb\nc\n")).Read(context.Background(), func(Request) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestJSONLinesAdapter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewJSONLinesAdapter(strings.NewReader("a\n")).Read(ctx, func(Request) error {
		t.Fatal("callback must not run")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "a b", sanitizeString("a\tb"))
	assert.Equal(t, "line one  line two", sanitizeString("line one\r\nline two"))
	assert.Equal(t, "trimmed", sanitizeString("  trimmed \x00"))
}

func TestRequest_Options(t *testing.T) {
	margin := 0
	fraction := 0.5
	icon := "*"
	sticky := true
	req := Request{
		Anchor:        "SE",
		Duration:      "1500",
		Sticky:        &sticky,
		Margin:        &margin,
		WidthFraction: &fraction,
		Background:    "#101010",
		Icon:          &icon,
	}

	opts, err := req.Options(alert.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, placement.SE, opts.Anchor)
	assert.Equal(t, 1500*time.Millisecond, opts.Duration)
	assert.True(t, opts.Sticky)
	assert.Equal(t, 0, opts.Margin)
	assert.InDelta(t, 0.5, opts.WidthFraction, 1e-9)
	assert.Equal(t, "#101010", opts.Style.Background)
	assert.Equal(t, &icon, opts.Style.Icon)
}

func TestRequest_OptionsDefaults(t *testing.T) {
	opts, err := Request{Text: "x"}.Options(alert.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, alert.DefaultOptions(), opts)
}

func TestRequest_OptionsErrors(t *testing.T) {
	_, err := Request{Anchor: "upper"}.Options(alert.DefaultOptions())
	assert.ErrorIs(t, err, placement.ErrInvalidAnchor)

	_, err = Request{Duration: "soon"}.Options(alert.DefaultOptions())
	assert.ErrorIs(t, err, alert.ErrInvalidOption)
}

func TestRequest_AlertType(t *testing.T) {
	typ, err := Request{}.AlertType()
	require.NoError(t, err)
	assert.Equal(t, theme.Info, typ)

	typ, err = Request{Type: "error"}.AlertType()
	require.NoError(t, err)
	assert.Equal(t, theme.Error, typ)

	_, err = Request{Type: "fatal"}.AlertType()
	assert.ErrorIs(t, err, theme.ErrInvalidType)
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter("")
	require.NoError(t, err)
	assert.Equal(t, "stdin", a.Name())

	_, err = NewAdapter("carrier-pigeon")
	var adapterErr *AdapterError
	assert.ErrorAs(t, err, &adapterErr)
}
