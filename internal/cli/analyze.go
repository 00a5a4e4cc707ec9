package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/portmeta/portmeta/internal/analyze"
	"github.com/portmeta/portmeta/internal/extract"
	"github.com/portmeta/portmeta/internal/models"
	"github.com/portmeta/portmeta/internal/signer"
	"github.com/portmeta/portmeta/internal/utils"
)

// NewAnalyzeCmd creates the analyze command
func NewAnalyzeCmd() *cobra.Command {
	var config models.AnalyzeConfig
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [flags] <archive>...",
		Short: "Analyze port archives and emit CMake usage metadata",
		Long: `Extracts each port archive into a temporary directory, reads its
CONTROL manifest, scans its share tree for CMake config files and declared
library targets, and emits one JSON-shaped report for all ports.

Archives that fail to extract or carry no usable manifest are skipped with
a logged message; the report covers the remaining ports.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Archives = args

			parsed, ok := models.ParseReportFormat(format)
			if !ok {
				return &models.AnalyzeError{
					Type: models.ErrInvalidConfig,
					Err:  fmt.Errorf("unknown format %q (expected object or lines)", format),
				}
			}
			config.Format = parsed

			if err := validateConfig(&config); err != nil {
				return err
			}

			return runAnalysis(&config)
		},
	}

	// Input/Output flags
	cmd.Flags().StringVar(&config.InFile, "infile", "", "Read archive paths from file (one per line) instead of the command line")
	cmd.Flags().StringVar(&config.OutFile, "outfile", "", "Write report to file instead of stdout")

	// Output shape
	cmd.Flags().StringVar(&format, "format", "object", "Report format: object (wrapped, with portDescription) or lines")
	cmd.Flags().BoolVarP(&config.Quiet, "quiet", "q", false, "Suppress progress messages")

	// Report signing flags
	cmd.Flags().StringVarP(&config.SignKeyPath, "sign-key", "k", "", "Path to GPG private key for signing the report")
	cmd.Flags().StringVarP(&config.SignPassphrase, "sign-passphrase", "p", "", "GPG key passphrase")

	return cmd
}

func validateConfig(config *models.AnalyzeConfig) error {
	if len(config.Archives) == 0 && config.InFile == "" {
		return &models.AnalyzeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("no archives given: pass archive paths or --infile"),
		}
	}

	if len(config.Archives) > 0 && config.InFile != "" {
		return &models.AnalyzeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("--infile and archive arguments are mutually exclusive"),
		}
	}

	if config.SignKeyPath != "" && config.OutFile == "" {
		return &models.AnalyzeError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("--sign-key requires --outfile"),
		}
	}

	return nil
}

func runAnalysis(config *models.AnalyzeConfig) (retErr error) {
	archives := config.Archives
	if config.InFile != "" {
		var err error
		archives, err = readArchiveList(config.InFile)
		if err != nil {
			return &models.AnalyzeError{Type: models.ErrFileOp, Err: fmt.Errorf("failed to read --infile: %w", err)}
		}
		if !config.Quiet {
			logrus.Infof("Input will be read from '%s' (%d archives)", config.InFile, len(archives))
		}
	}

	// Extraction directory is scoped to this run and removed on every
	// exit path; failing to create or remove it is fatal
	tempDir, err := os.MkdirTemp("", "portmeta-")
	if err != nil {
		return &models.AnalyzeError{Type: models.ErrFileOp, Err: fmt.Errorf("failed to create temp directory: %w", err)}
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil && retErr == nil {
			retErr = &models.AnalyzeError{Type: models.ErrFileOp, Err: fmt.Errorf("failed to remove temp directory: %w", err)}
		}
	}()

	extractor := extract.NewArchiveExtractor()

	var records []*models.PortRecord
	for _, archive := range archives {
		record, err := processArchive(extractor, archive, tempDir, config)
		if err != nil {
			logrus.Warnf("failed: %v", err)
			continue
		}
		records = append(records, record)
	}

	report := analyze.RenderReport(records, config.Format)

	if config.OutFile == "" {
		fmt.Print(report)
		return nil
	}

	if err := utils.WriteFile(config.OutFile, []byte(report), 0644); err != nil {
		return &models.AnalyzeError{Type: models.ErrFileOp, Err: fmt.Errorf("failed opening output file '%s': %w", config.OutFile, err)}
	}
	if !config.Quiet {
		logrus.Infof("Report written to '%s'", config.OutFile)
	}
	logrus.Debugf("report sha256: %s", utils.SHA256Sum([]byte(report)))

	if config.SignKeyPath != "" {
		if err := signReport(config, []byte(report)); err != nil {
			return err
		}
	}

	return nil
}

// processArchive extracts one archive and analyzes the unpacked port
func processArchive(extractor extract.Extractor, archivePath, tempDir string, config *models.AnalyzeConfig) (*models.PortRecord, error) {
	if !config.Quiet {
		logrus.Infof("Processing %s...", archivePath)
	}

	destDir := filepath.Join(tempDir, archiveStem(archivePath))

	if _, err := os.Stat(destDir); os.IsNotExist(err) {
		if err := extractor.Extract(archivePath, destDir); err != nil {
			return nil, &models.AnalyzeError{Type: models.ErrExtract, Archive: archivePath, Err: err}
		}
	}

	record, err := analyze.AnalyzePort(destDir)
	if err != nil {
		return nil, err
	}

	if !config.Quiet {
		targetCount := 0
		for _, entry := range record.Packages {
			targetCount += len(entry.Targets)
		}
		plural := "s"
		if len(record.Packages) == 1 {
			plural = ""
		}
		logrus.Infof("done (port '%s' provides %d package%s, %d target(s))",
			record.PortName, len(record.Packages), plural, targetCount)
	}

	return record, nil
}

func signReport(config *models.AnalyzeConfig, report []byte) error {
	gpg, err := signer.NewGPGSigner(config.SignKeyPath, config.SignPassphrase)
	if err != nil {
		return &models.AnalyzeError{Type: models.ErrSigning, Err: fmt.Errorf("failed to initialize GPG signer: %w", err)}
	}

	signature, err := gpg.SignDetached(report)
	if err != nil {
		return &models.AnalyzeError{Type: models.ErrSigning, Err: err}
	}

	sigPath := config.OutFile + ".asc"
	if err := utils.WriteFile(sigPath, signature, 0644); err != nil {
		return &models.AnalyzeError{Type: models.ErrFileOp, Err: fmt.Errorf("failed to write signature '%s': %w", sigPath, err)}
	}
	if !config.Quiet {
		logrus.Infof("Signature written to '%s'", sigPath)
	}

	return nil
}

// readArchiveList reads newline-separated archive paths, dropping blank
// lines and surrounding whitespace
func readArchiveList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var archives []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			archives = append(archives, line)
		}
	}
	return archives, nil
}

// archiveStem returns the archive filename with its archive extension
// stripped; it names the per-archive extraction directory
func archiveStem(path string) string {
	name := filepath.Base(path)
	for _, suffix := range []string{".tar.gz", ".tar.xz", ".tar.zst", ".tgz", ".tar", ".zip"} {
		if strings.HasSuffix(name, suffix) {
			return name[:len(name)-len(suffix)]
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
