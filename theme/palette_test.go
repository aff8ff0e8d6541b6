package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"go-smf/midi"
)

const gpl = `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0	black
255 255 255	white
300 0 0	out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	require.NoError(t, err)
	require.Equal(t, "test", p.Name)
	require.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)
}

func TestParseGPL_Empty(t *testing.T) {
	_, err := ParseGPL(strings.NewReader("GIMP Palette\n"))
	require.Error(t, err)
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.gpl")
	require.NoError(t, os.WriteFile(path, []byte(gpl), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	require.Len(t, p.Colors, 2)

	_, err = LoadGPL(filepath.Join(t.TempDir(), "missing.gpl"))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	require.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	require.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
	require.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
	require.Equal(t, "#c86432", p.Lookup(1).Hex())
}

func TestThemeCategories(t *testing.T) {
	th := New(nil)
	require.Equal(t, "plasma", th.Palette.Name)

	seen := map[string]bool{}
	for _, c := range []midi.Category{midi.CategoryChannel, midi.CategorySystem, midi.CategoryMeta, midi.CategoryUndefined} {
		seen[string(th.Category(c))] = true
	}
	require.Len(t, seen, 4)
}
