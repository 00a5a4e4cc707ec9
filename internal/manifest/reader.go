package manifest

import (
	"fmt"

	"github.com/portmeta/portmeta/internal/models"
)

// Read loads the port manifest from a CONTROL file. The port name is taken
// from the Source field (source CONTROL) or the Package field (binary
// CONTROL); a file providing neither is malformed. The description is
// returned verbatim; escaping for the report happens at assembly time.
func Read(controlPath string) (*models.PortManifest, error) {
	paragraphs, err := ParseFile(controlPath)
	if err != nil {
		return nil, err
	}

	// Only the first paragraph carries the port identity
	first := paragraphs[0]

	m := &models.PortManifest{}
	if source, ok := first["Source"]; ok {
		m.Name = source
	} else if pkg, ok := first["Package"]; ok {
		m.Name = pkg
	} else {
		return nil, fmt.Errorf("%s: %w: no Source or Package field", controlPath, ErrMalformed)
	}

	if description, ok := first["Description"]; ok {
		m.Description = description
	}

	return m, nil
}
