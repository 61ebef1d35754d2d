// Package analyze handles the transaction correlation command.
package analyze

import (
	"io"

	"github.com/spf13/cobra"

	"loglens/cmd/common"
	"loglens/cmd/root"
	"loglens/internal/logging"
	"loglens/internal/report"
)

// Cmd represents the analyze command.
var Cmd = &cobra.Command{
	Use:   "analyze",
	Short: "Correlate a log file into request/response transactions",
	Long: `Parse a log file, correlate request and response lines into
transactions and write them as CSV or JSON, newest first.`,
	Run: analyzeFunc,
}

func analyzeFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)

	if root.SharedFlags.Input == "" {
		log.Fatal("No input file given, use --input")
	}

	s := common.NewSession(root.Cfg, log)
	if err := common.LoadInputFile(s, root.SharedFlags.Input, log); err != nil {
		log.Fatalf("Error reading input file: %v", err)
	}

	transactions := s.Correlate()
	log.Info("Analysis completed",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	writer := report.NewWriter(common.Delimiter(root.Cfg), log)
	write := func(out io.Writer) error {
		if root.SharedFlags.Format == "json" {
			return writer.WriteTransactionsJSON(transactions, out)
		}
		return writer.WriteTransactionsCSV(transactions, out)
	}
	if err := common.WriteOutput(writer, root.SharedFlags.Output, root.SharedFlags.Format, write); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}
