package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const customTOML = `
foreground = "#111111"
padding = 2

[success]
background = "#00FF00"
icon = "OK"

[info]
background = "#0000FF"
icon = "i"

[warning]
background = "#FFFF00"
icon = "!"
foreground = "#222222"

[error]
background = "#FF0000"
icon = "E"
padding = 3
`

func TestParse_TOMLAppliesCommonValues(t *testing.T) {
	th, err := Parse("custom", []byte(customTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, Design{Background: "#00FF00", Foreground: "#111111", Icon: "OK", Padding: 2}, th.Design(Success))
	assert.Equal(t, "#222222", th.Design(Warning).Foreground)
	assert.Equal(t, 3, th.Design(Error).Padding)
}

func TestParse_YAML(t *testing.T) {
	content := `
foreground: "#101010"
bold: true
info:
  background: "#3366FF"
  icon: "i"
`
	th, err := Parse("yaml", []byte(content), FormatYAML)
	require.NoError(t, err)

	d := th.Design(Info)
	assert.Equal(t, "#3366FF", d.Background)
	assert.Equal(t, "#101010", d.Foreground)
	assert.True(t, d.Bold)
	assert.Equal(t, 1, d.Padding)
}

func TestParse_TypeValuesOverrideThemeValues(t *testing.T) {
	content := `
padding = 2
bold = true

[info]
padding = 0
bold = false

[error]
icon = "E"
`
	th, err := Parse("flat", []byte(content), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, 0, th.Design(Info).Padding)
	assert.False(t, th.Design(Info).Bold)

	assert.Equal(t, 2, th.Design(Error).Padding)
	assert.True(t, th.Design(Error).Bold)
	assert.Equal(t, "E", th.Design(Error).Icon)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("bad", []byte("this is not [ toml"), FormatTOML)
	assert.Error(t, err)

	_, err = Parse("bad", []byte("unknown_key: 1\n"), FormatYAML)
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatForPath("a.toml"))
	assert.Equal(t, FormatYAML, FormatForPath("a.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("a.YML"))
	assert.Equal(t, FormatTOML, FormatForPath("a"))
}

func TestDesign_Merge(t *testing.T) {
	base := Default().Design(Warning)
	icon := "W"
	padding := 0
	bold := true

	merged := base.Merge(Overrides{Background: "#000000", Icon: &icon, Padding: &padding, Bold: &bold})

	assert.Equal(t, "#000000", merged.Background)
	assert.Equal(t, base.Foreground, merged.Foreground)
	assert.Equal(t, "W", merged.Icon)
	assert.Equal(t, 0, merged.Padding)
	assert.True(t, merged.Bold)

	assert.Equal(t, base, base.Merge(Overrides{}))
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
		wantErr  bool
	}{
		{"success", Success, false},
		{"INFO", Info, false},
		{"warning", Warning, false},
		{"warn", Warning, false},
		{"error", Error, false},
		{"fatal", Info, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			typ, err := ParseType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, typ)
			assert.Equal(t, typ, typ.Next().Next().Next().Next())
		})
	}
}

func TestLoader_PrefersUserTheme(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.toml"), []byte(customTOML), 0644))

	l := NewLoader(dir, nil)
	th, err := l.Load("default")
	require.NoError(t, err)

	assert.Equal(t, "#00FF00", th.Design(Success).Background)
	assert.Equal(t, filepath.Join(dir, "default.toml"), th.Path)
	assert.Same(t, th, l.Theme())
}

func TestLoader_FallsBackToDefault(t *testing.T) {
	l := NewLoader(t.TempDir(), nil)

	th, err := l.Load("does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, th.Name)

	th, err = l.Load("")
	require.NoError(t, err)
	assert.True(t, th.IsDefault)
}

func TestLoader_BrokenUserThemeUsesBundled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "minimal.toml"), []byte("[[["), 0644))

	th, err := NewLoader(dir, nil).Load("minimal")
	require.NoError(t, err)
	assert.Empty(t, th.Path)
	assert.Equal(t, "2", th.Design(Success).Background)
}

func TestLoader_ListThemes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ocean.yaml"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.toml"), []byte(customTOML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	themes := NewLoader(dir, nil).ListThemes()
	assert.Equal(t, []string{"catppuccin", "default", "minimal", "ocean"}, themes)
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(customTOML), 0644))

	th, err := NewTheme("custom", path)
	require.NoError(t, err)

	same, changed, err := th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Same(t, th, same)

	updated := []byte("[success]\nbackground = \"#ABCDEF\"\nicon = \"s\"\n")
	require.NoError(t, os.WriteFile(path, updated, 0644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	fresh, changed, err := th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "#ABCDEF", fresh.Design(Success).Background)
	assert.Equal(t, "#00FF00", th.Design(Success).Background, "original theme is immutable")
}

func TestLoader_HotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	require.NoError(t, os.WriteFile(path, []byte(customTOML), 0644))

	l := NewLoader(dir, nil)
	_, err := l.Load("live")
	require.NoError(t, err)

	changes := make(chan *Theme, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, l.StartHotReload(ctx, func(th *Theme) { changes <- th }))
	defer l.StopHotReload()

	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.WriteFile(path, []byte("[info]\nbackground = \"#123456\"\nicon = \"i\"\n"), 0644))
	require.NoError(t, os.Chtimes(path, future, future))

	// Editors may produce several write events; wait for the final content.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case th := <-changes:
			if th.Design(Info).Background == "#123456" {
				return
			}
		case <-deadline:
			t.Fatal("theme change was not observed")
		}
	}
}

func TestLoader_HotReloadSkipsEmbedded(t *testing.T) {
	l := NewLoader("", nil)
	_, err := l.Load("default")
	require.NoError(t, err)

	require.NoError(t, l.StartHotReload(context.Background(), nil))
	l.StopHotReload()
}
