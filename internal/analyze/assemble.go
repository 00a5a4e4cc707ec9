package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/portmeta/portmeta/internal/models"
)

// usageTemplate is the synthesized usage note for ports that ship CMake
// targets but no usage file. The escape sequences are literal two-character
// pairs, matching the escaping applied to real usage files.
const usageTemplate = `The package %s provides CMake targets:\r\n\r\n    find_package(%s CONFIG REQUIRED)\r\n    target_link_libraries(main PRIVATE %s)\r\n`

// Assemble merges the manifest, the scanned target and config maps, and the
// usage text into one immutable PortRecord. Entry order is the sorted order
// of the find_package names; each entry's targets are sorted. When no usage
// text was captured and at least one name exists, a single note is
// synthesized from the first sorted name and shared by every entry.
func Assemble(m *models.PortManifest, targets TargetMap, configs ConfigMap, usage string) *models.PortRecord {
	keys := make([]string, 0, len(targets)+len(configs))
	for key := range targets {
		keys = append(keys, key)
	}
	for key := range configs {
		if _, ok := targets[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	record := &models.PortRecord{
		PortName:        m.Name,
		PortDescription: EscapeString(m.Description),
	}

	for _, key := range keys {
		displayName := key
		if bound, ok := configs[key]; ok {
			displayName = bound
		}

		// Sorted copy; duplicates from repeated declarations survive
		targetList := append([]string(nil), targets[key]...)
		sort.Strings(targetList)

		record.Packages = append(record.Packages, models.PackageEntry{
			Name:    displayName,
			Targets: targetList,
		})
	}

	if usage == "" && len(record.Packages) > 0 {
		first := record.Packages[0]
		usage = fmt.Sprintf(usageTemplate, record.PortName, first.Name, strings.Join(first.Targets, " "))
	}
	record.Usage = usage

	return record
}
