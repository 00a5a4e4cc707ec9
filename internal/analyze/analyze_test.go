package analyze

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/portmeta/portmeta/internal/models"
)

func writeControl(t *testing.T, root, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "CONTROL"), []byte(contents), 0644))
}

func TestAnalyzePortZlibScenario(t *testing.T) {
	root := t.TempDir()
	writeControl(t, root, "Source: zlib\nVersion: 1.2.11\nDescription: A compression library\n")
	writeShareFile(t, root, "zlib/zlibConfig.cmake", "add_library(ZLIB::ZLIB IMPORTED)\n")

	record, err := AnalyzePort(root)
	require.NoError(t, err)

	require.Equal(t, "zlib", record.PortName)
	require.Equal(t, "A compression library", record.PortDescription)
	require.Len(t, record.Packages, 1)
	require.Equal(t, "zlib", record.Packages[0].Name)
	require.Equal(t, []string{"ZLIB::ZLIB"}, record.Packages[0].Targets)
	require.Equal(t,
		`The package zlib provides CMake targets:\r\n\r\n    find_package(zlib CONFIG REQUIRED)\r\n    target_link_libraries(main PRIVATE ZLIB::ZLIB)\r\n`,
		record.Usage)

	lines := RenderRecord(record, models.FormatObject)
	require.Len(t, lines, 1)
	require.Equal(t,
		`    "zlib": { "name": "zlib", "targets": ["ZLIB::ZLIB"], "portName": "zlib", "portDescription": "A compression library", "description": "The package zlib provides CMake targets:\r\n\r\n    find_package(zlib CONFIG REQUIRED)\r\n    target_link_libraries(main PRIVATE ZLIB::ZLIB)\r\n" }`,
		lines[0])
}

func TestAnalyzePortManifestOnly(t *testing.T) {
	root := t.TempDir()
	writeControl(t, root, "Package: foo\n")

	record, err := AnalyzePort(root)
	require.NoError(t, err)

	require.Equal(t, "foo", record.PortName)
	require.Empty(t, record.Packages)
	require.Equal(t, "", record.Usage)

	lines := RenderRecord(record, models.FormatObject)
	require.Equal(t,
		`    "_foo": { "name": "_foo", "targets": [], "portName": "foo", "portDescription": "", "description": "" }`,
		lines[0])
}

func TestAnalyzePortUsageOnlyFallsBackToUsageNames(t *testing.T) {
	root := t.TempDir()
	writeControl(t, root, "Source: openssl-wrapper\n")
	// The second mention starts its line: seeding must see the raw
	// newline, not its escaped form
	writeShareFile(t, root, "openssl-wrapper/usage",
		"Link manually:\nfind_package(Zlib REQUIRED)\nfind_package(OpenSSL)\n")

	record, err := AnalyzePort(root)
	require.NoError(t, err)

	require.Len(t, record.Packages, 2)
	// Serialization order is sorted, not first-seen
	require.Equal(t, "OpenSSL", record.Packages[0].Name)
	require.Equal(t, "Zlib", record.Packages[1].Name)
	require.Empty(t, record.Packages[0].Targets)
	require.Empty(t, record.Packages[1].Targets)

	// A captured usage note suppresses synthesis
	require.Contains(t, record.Usage, `Link manually:\n`)
}

func TestAnalyzePortUsageNamesNotSeededWhenTargetsExist(t *testing.T) {
	root := t.TempDir()
	writeControl(t, root, "Source: zlib\n")
	writeShareFile(t, root, "zlib/zlibConfig.cmake", "add_library(ZLIB::ZLIB IMPORTED)\n")
	writeShareFile(t, root, "zlib/usage", "See also find_package(Unrelated REQUIRED)\n")

	record, err := AnalyzePort(root)
	require.NoError(t, err)

	require.Len(t, record.Packages, 1)
	require.Equal(t, "zlib", record.Packages[0].Name)
}

func TestAnalyzePortMissingManifest(t *testing.T) {
	root := t.TempDir()

	_, err := AnalyzePort(root)
	require.Error(t, err)

	var analyzeErr *models.AnalyzeError
	require.True(t, errors.As(err, &analyzeErr))
	require.Equal(t, models.ErrManifest, analyzeErr.Type)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAnalyzePortMalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeControl(t, root, "Version: 1.0\n")

	_, err := AnalyzePort(root)
	require.Error(t, err)

	var analyzeErr *models.AnalyzeError
	require.True(t, errors.As(err, &analyzeErr))
	require.Equal(t, models.ErrManifest, analyzeErr.Type)
	require.False(t, errors.Is(err, os.ErrNotExist))
}
