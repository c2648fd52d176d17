package mcdcli

import (
	"path/filepath"
	"strings"
)

type exportExtension string

const SVG exportExtension = ".svg"
const JSON exportExtension = ".json"

var SUPPORTED_EXTENSIONS = []exportExtension{SVG, JSON}

func getExportExtension(outputPath string) exportExtension {
	ext := strings.ToLower(filepath.Ext(outputPath))
	for _, kext := range SUPPORTED_EXTENSIONS {
		if kext == exportExtension(ext) {
			return exportExtension(ext)
		}
	}
	// default is svg
	return SVG
}

func (ex exportExtension) supportsDarkTheme() bool {
	return ex == SVG
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	} else {
		return strings.TrimSuffix(fp, ext) + newExt
	}
}
