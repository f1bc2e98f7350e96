package design

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/barnframe/pkg/building"
	"github.com/matzehuels/barnframe/pkg/errors"
)

func TestReadFileFormats(t *testing.T) {
	want, err := ReadFile("testdata/barn.json")
	require.NoError(t, err)

	for _, path := range []string{"testdata/barn.toml", "testdata/barn.yaml"} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestReadNormalizes(t *testing.T) {
	d, err := ReadFile("testdata/barn.json")
	require.NoError(t, err)

	assert.Equal(t, "hay barn", d.Name)
	assert.Equal(t, building.Dimensions{Width: 36, Length: 48, Height: 14, RoofPitch: 18}, d.Dimensions)
	require.Len(t, d.Openings, 3)

	assert.Equal(t, "bay", d.Openings[0].ID, "explicit IDs are kept")
	assert.True(t, strings.HasPrefix(d.Openings[1].ID, "walkDoor-"), "got %q", d.Openings[1].ID)
	assert.True(t, strings.HasPrefix(d.Openings[2].ID, "window-"), "got %q", d.Openings[2].ID)
	assert.Equal(t, building.AlignCenter, d.Openings[2].Align, "missing alignment defaults to center")

	again, err := ReadFile("testdata/barn.json")
	require.NoError(t, err)
	assert.Equal(t, d.Openings[1].ID, again.Openings[1].ID, "generated IDs are deterministic")
}

func TestOpeningIDDependsOnPosition(t *testing.T) {
	o := building.Opening{Kind: building.KindWindow, Wall: building.WallBack, Align: building.AlignCenter, Width: 3, Height: 3}
	assert.Equal(t, OpeningID(0, o), OpeningID(0, o))
	assert.NotEqual(t, OpeningID(0, o), OpeningID(1, o))
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{
			name: "malformed json",
			doc:  `{"dimensions": `,
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "unknown field",
			doc:  `{"dimensions": {"width": 10, "length": 10, "height": 10}, "openings": [], "colour": "red"}`,
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "negative width",
			doc:  `{"dimensions": {"width": -10, "length": 10, "height": 10}, "openings": []}`,
			code: errors.ErrCodeInvalidDimensions,
		},
		{
			name: "unknown kind",
			doc:  `{"dimensions": {"width": 10, "length": 10, "height": 10}, "openings": [{"kind": "hatch", "wall": "front", "width": 2, "height": 2}]}`,
			code: errors.ErrCodeInvalidOpening,
		},
		{
			name: "duplicate ids",
			doc: `{"dimensions": {"width": 10, "length": 10, "height": 10}, "openings": [
				{"id": "a", "kind": "door", "wall": "front", "width": 3, "height": 7},
				{"id": "a", "kind": "door", "wall": "back", "width": 3, "height": 7}]}`,
			code: errors.ErrCodeInvalidOpening,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestReadTOMLUnknownField(t *testing.T) {
	doc := "[dimensions]\nwidth = 10.0\nlength = 10.0\nheight = 10.0\ncolour = \"red\"\n"
	_, err := Parse([]byte(doc), FormatTOML)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile("testdata/missing.json")
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	_, err = ReadFile("testdata/barn")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	_, err = ReadFile("testdata/barn.xml")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, ".toml": FormatTOML, "YAML": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	d, err := ReadFile("testdata/barn.json")
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range Formats {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(dir, "barn."+string(f))
			require.NoError(t, WriteFile(path, d))
			got, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, d, got)
		})
	}
}

func TestMarshalStable(t *testing.T) {
	a, err := ReadFile("testdata/barn.yaml")
	require.NoError(t, err)
	b, err := ReadFile("testdata/barn.toml")
	require.NoError(t, err)

	ma, err := Marshal(a)
	require.NoError(t, err)
	mb, err := Marshal(b)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(ma, mb))
	assert.NotContains(t, string(ma), "\n")
}

func TestWriteJSONIndented(t *testing.T) {
	d := &Design{Dimensions: building.Dimensions{Width: 10, Length: 20, Height: 8}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, FormatJSON))
	assert.Contains(t, buf.String(), "\n  \"dimensions\"")
}
