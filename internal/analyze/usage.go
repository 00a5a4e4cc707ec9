package analyze

import (
	"os"
	"path/filepath"
	"regexp"
)

// findPackagePattern matches a find_package call in usage text and captures
// the requested name up to whitespace or the closing paren
var findPackagePattern = regexp.MustCompile(`\bfind_package\(([^\s)]+)[\s)]`)

// FindUsage locates the port's usage note among the share-tree files: the
// first file whose basename is exactly "usage". The contents come back
// verbatim; escaping happens at assembly time. A missing or unreadable
// usage file yields the empty string.
func FindUsage(files []string) string {
	for _, path := range files {
		if filepath.Base(path) != "usage" {
			continue
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return ""
		}
		return string(contents)
	}
	return ""
}

// SeedNamesFromUsage registers every find_package name mentioned in the
// raw usage text into the target map with an empty target list. Intended
// for ports that ship only a usage note: callers invoke it when the scan
// found no directory-derived names at all. The text must be unescaped, so
// a mention at the start of a line still sits on a word boundary.
// Duplicate mentions register once.
func SeedNamesFromUsage(usage string, targets TargetMap) {
	for _, match := range findPackagePattern.FindAllStringSubmatch(usage, -1) {
		name := match[1]
		if _, ok := targets[name]; !ok {
			targets[name] = nil
		}
	}
}
