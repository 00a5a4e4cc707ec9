package analyze

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// TargetMap maps a CMake find_package name to the library targets declared
// for it, in discovery order
type TargetMap map[string][]string

// ConfigMap maps a find_package name to the display name derived from its
// config file's filename
type ConfigMap map[string]string

// libraryTargetPattern matches an add_library call and captures its first
// argument up to whitespace or the closing paren
var libraryTargetPattern = regexp.MustCompile(`\badd_library\(([^\s)]+)[\s)]`)

const (
	configSuffixPascal = "Config.cmake"
	configSuffixKebab  = "-config.cmake"
)

// qualifies reports whether a path is a CMake build script under the share
// subtree. The share marker is matched case-insensitively, the extension is
// not.
func qualifies(path string) bool {
	slashed := filepath.ToSlash(path)
	return strings.Contains(strings.ToLower(slashed), "/share/") &&
		strings.HasSuffix(slashed, ".cmake")
}

// ScanCMakeFiles walks the port's file list once, collecting declared
// library targets per find_package name and config-file display-name
// bindings. The find_package name for a qualifying file is its parent
// directory's basename, case preserved. Unreadable files contribute nothing.
func ScanCMakeFiles(files []string) (TargetMap, ConfigMap) {
	targets := make(TargetMap)
	configs := make(ConfigMap)

	for _, path := range files {
		if !qualifies(path) {
			continue
		}

		name := filepath.Base(filepath.Dir(path))

		if contents, err := os.ReadFile(path); err == nil {
			for _, match := range libraryTargetPattern.FindAllStringSubmatch(string(contents), -1) {
				targets[name] = append(targets[name], match[1])
			}
		}

		filename := filepath.Base(path)
		if strings.HasSuffix(filename, configSuffixPascal) {
			root := filename[:len(filename)-len(configSuffixPascal)]
			if strings.EqualFold(root, name) {
				configs[name] = root
			}
		} else if strings.HasSuffix(filename, configSuffixKebab) {
			root := filename[:len(filename)-len(configSuffixKebab)]
			if strings.EqualFold(root, name) {
				configs[name] = root
			}
		}
	}

	return targets, configs
}
