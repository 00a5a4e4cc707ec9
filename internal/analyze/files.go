package analyze

import (
	"os"
	"path/filepath"
)

// ListShareFiles returns every regular file under the port's share subtree,
// in walk (lexicographic) order. A port without a share directory yields an
// empty list; that is not an error.
func ListShareFiles(portRoot string) ([]string, error) {
	shareDir := filepath.Join(portRoot, "share")

	if _, err := os.Stat(shareDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	err := filepath.Walk(shareDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
