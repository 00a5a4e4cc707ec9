package extract

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Extractor materializes a port archive into a directory
type Extractor interface {
	// Extract unpacks the archive at archivePath into destDir,
	// creating destDir if needed
	Extract(archivePath, destDir string) error
}

// ArchiveFormat represents the container/compression format of an archive
type ArchiveFormat int

const (
	FormatUnknown ArchiveFormat = iota
	FormatZip
	FormatTar
	FormatTarGz
	FormatTarXz
	FormatTarZst
)

// String returns the string representation of ArchiveFormat
func (f ArchiveFormat) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTar:
		return "tar"
	case FormatTarGz:
		return "tar.gz"
	case FormatTarXz:
		return "tar.xz"
	case FormatTarZst:
		return "tar.zst"
	default:
		return "unknown"
	}
}

// Magic bytes for archive format detection
var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}
	gzipMagic = []byte{0x1F, 0x8B}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// DetectFormat determines the archive format based on magic bytes, falling
// back to the file extension
func DetectFormat(path string) (ArchiveFormat, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, err
	}
	defer f.Close()

	header := make([]byte, 6)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return FormatUnknown, err
	}
	header = header[:n]

	hasPrefix := func(magic []byte) bool {
		return len(header) >= len(magic) && string(header[:len(magic)]) == string(magic)
	}

	switch {
	case hasPrefix(zipMagic):
		return FormatZip, nil
	case hasPrefix(gzipMagic):
		return FormatTarGz, nil
	case hasPrefix(xzMagic):
		return FormatTarXz, nil
	case hasPrefix(zstdMagic):
		return FormatTarZst, nil
	}

	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".zip"):
		return FormatZip, nil
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(name, ".tar.xz"):
		return FormatTarXz, nil
	case strings.HasSuffix(name, ".tar.zst"):
		return FormatTarZst, nil
	case strings.HasSuffix(name, ".tar"):
		return FormatTar, nil
	}

	return FormatUnknown, nil
}

// ArchiveExtractor implements Extractor for zip and tar-based port archives
type ArchiveExtractor struct{}

// NewArchiveExtractor creates a new archive extractor
func NewArchiveExtractor() *ArchiveExtractor {
	return &ArchiveExtractor{}
}

// Extract unpacks the archive at archivePath into destDir
func (e *ArchiveExtractor) Extract(archivePath, destDir string) error {
	format, err := DetectFormat(archivePath)
	if err != nil {
		return fmt.Errorf("failed to detect archive format: %w", err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	switch format {
	case FormatZip:
		return extractZip(archivePath, destDir)
	case FormatTar, FormatTarGz, FormatTarXz, FormatTarZst:
		return extractTar(archivePath, destDir, format)
	default:
		return fmt.Errorf("unsupported archive format: %s", archivePath)
	}
}

// securePath resolves an archive entry name inside destDir, rejecting
// entries that would escape it
func securePath(destDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return filepath.Join(destDir, cleaned), nil
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, entry := range r.File {
		target, err := securePath(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}

		src, err := entry.Open()
		if err != nil {
			return err
		}

		if err := writeEntry(target, src, entry.Mode()); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}

	return nil
}

func extractTar(archivePath, destDir string, format ArchiveFormat) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	var reader io.Reader = f

	// Layer the decompressor matching the detected format
	switch format {
	case FormatTarGz:
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case FormatTarXz:
		xr, err := xz.NewReader(f)
		if err != nil {
			return err
		}
		reader = xr
	case FormatTarZst:
		zr, err := zstd.NewReader(f)
		if err != nil {
			return err
		}
		defer zr.Close()
		reader = zr
	}

	tr := tar.NewReader(reader)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		target, err := securePath(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := writeEntry(target, tr, os.FileMode(header.Mode)); err != nil {
				return err
			}
		default:
			// Symlinks and special files are not part of port archives
			continue
		}
	}

	return nil
}

func writeEntry(target string, src io.Reader, mode os.FileMode) error {
	perm := mode.Perm()
	if perm == 0 {
		perm = 0644
	}
	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}

	return dst.Sync()
}
