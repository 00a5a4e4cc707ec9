// Package analyze derives CMake consumption metadata from an unpacked port:
// which find_package names it exposes, which library targets each declares,
// and a usage note, assembled into one record per port.
package analyze

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/portmeta/portmeta/internal/manifest"
	"github.com/portmeta/portmeta/internal/models"
)

// AnalyzePort inspects an unpacked port rooted at portRoot and returns its
// assembled record. The CONTROL manifest is required; everything under
// share/ is best-effort.
func AnalyzePort(portRoot string) (*models.PortRecord, error) {
	m, err := manifest.Read(filepath.Join(portRoot, "CONTROL"))
	if err != nil {
		return nil, &models.AnalyzeError{Type: models.ErrManifest, Archive: portRoot, Err: err}
	}

	files, err := ListShareFiles(portRoot)
	if err != nil {
		return nil, &models.AnalyzeError{Type: models.ErrFileOp, Archive: portRoot, Err: err}
	}

	targets, configs := ScanCMakeFiles(files)
	usage := FindUsage(files)

	// Ports shipping only a usage note still advertise the names it
	// mentions; the raw text is scanned so line starts stay word
	// boundaries
	if len(targets) == 0 {
		SeedNamesFromUsage(usage, targets)
	}

	record := Assemble(m, targets, configs, EscapeString(usage))

	logrus.Debugf("analyzed %s: %d package(s), %d config binding(s)", portRoot, len(record.Packages), len(configs))

	return record, nil
}
