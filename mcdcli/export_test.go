package mcdcli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormat(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name             string
		outputPath       string
		extension        exportExtension
		supportsDarkMode bool
	}{
		{
			name:             "svg",
			outputPath:       "/out.svg",
			extension:        SVG,
			supportsDarkMode: true,
		},
		{
			name:       "json",
			outputPath: "/out.json",
			extension:  JSON,
		},
		{
			name:             "uppercase",
			outputPath:       "/out.SVG",
			extension:        SVG,
			supportsDarkMode: true,
		},
		{
			name:             "stdout",
			outputPath:       "-",
			extension:        SVG,
			supportsDarkMode: true,
		},
		{
			name:             "unknown",
			outputPath:       "/out.png",
			extension:        SVG,
			supportsDarkMode: true,
		},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			extension := getExportExtension(tc.outputPath)
			assert.Equal(t, tc.extension, extension)
			assert.Equal(t, tc.supportsDarkMode, extension.supportsDarkTheme())
		})
	}
}

func TestRenameExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a/b.svg", renameExt("a/b.json", ".svg"))
	assert.Equal(t, "a/b.svg", renameExt("a/b", ".svg"))
	assert.Equal(t, "a.b/c.svg", renameExt("a.b/c", ".svg"))
	assert.Equal(t, "c.mcd.svg", renameExt("c.mcd.json", ".svg"))
}
