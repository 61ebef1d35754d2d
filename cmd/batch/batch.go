// Package batch handles directory-wide analysis.
package batch

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"loglens/cmd/common"
	"loglens/cmd/root"
	"loglens/internal/logging"
	"loglens/internal/report"
)

var (
	inputDir  string
	outputDir string
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every log file in a directory",
	Long: `Analyze each .log and .txt file in a directory independently and
write one transactions CSV per input file. Files are never merged; each one
is a separate analysis run.`,
	Run: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input-dir", "d", "", "Directory containing log files")
	Cmd.Flags().StringVarP(&outputDir, "output-dir", "t", "", "Directory for the generated CSV files")
}

func batchFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)

	if inputDir == "" || outputDir == "" {
		log.Fatal("Both --input-dir and --output-dir are required")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		log.Fatalf("Error reading input directory: %v", err)
	}

	writer := report.NewWriter(common.Delimiter(root.Cfg), log)
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isLogFile(entry.Name()) {
			continue
		}

		inPath := filepath.Join(inputDir, entry.Name())
		outPath := filepath.Join(outputDir, replaceExt(entry.Name(), ".csv"))
		fileLog := log.WithField(logging.FieldFile, inPath)

		// Each file gets a fresh session, state is never carried over.
		s := common.NewSession(root.Cfg, fileLog)
		if err := common.LoadInputFile(s, inPath, fileLog); err != nil {
			fileLog.WithError(err).Error("Skipping unreadable file")
			continue
		}

		transactions := s.Correlate()
		err := writer.WriteToFile(outPath, "csv", func(out io.Writer) error {
			return writer.WriteTransactionsCSV(transactions, out)
		})
		if err != nil {
			fileLog.WithError(err).Error("Failed to write transactions CSV")
			continue
		}
		processed++
	}

	log.Info("Batch analysis completed",
		logging.Field{Key: logging.FieldCount, Value: processed})
}

func isLogFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".log" || ext == ".txt"
}

func replaceExt(name, newExt string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + newExt
}
