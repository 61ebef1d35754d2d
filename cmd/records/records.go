// Package records handles the record listing command.
package records

import (
	"io"

	"github.com/spf13/cobra"

	"loglens/cmd/common"
	"loglens/cmd/root"
	"loglens/internal/logging"
	"loglens/internal/models"
	"loglens/internal/report"
	"loglens/internal/session"
)

var (
	levelFilter  string
	tagFilter    string
	searchFilter string
)

// Cmd represents the records command.
var Cmd = &cobra.Command{
	Use:   "records",
	Short: "Parse a log file into structured records",
	Long: `Parse a log file into structured records (timestamp, level, tag,
message) and write them as CSV or JSON in input order, with optional
level/tag/substring filtering.`,
	Run: recordsFunc,
}

func init() {
	Cmd.Flags().StringVar(&levelFilter, "level", "", "Only records with this level (ERROR, WARN, INFO, DEBUG)")
	Cmd.Flags().StringVar(&tagFilter, "tag", "", "Only records with this tag")
	Cmd.Flags().StringVar(&searchFilter, "search", "", "Only records containing this substring")
}

func recordsFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)

	if root.SharedFlags.Input == "" {
		log.Fatal("No input file given, use --input")
	}

	s := common.NewSession(root.Cfg, log)
	if err := common.LoadInputFile(s, root.SharedFlags.Input, log); err != nil {
		log.Fatalf("Error reading input file: %v", err)
	}

	filter := session.RecordFilter{
		Tag:       tagFilter,
		Substring: searchFilter,
	}
	if levelFilter != "" {
		filter.Level = models.ParseLogLevel(levelFilter)
	}
	records := s.FilterRecords(filter)

	writer := report.NewWriter(common.Delimiter(root.Cfg), log)
	write := func(out io.Writer) error {
		if root.SharedFlags.Format == "json" {
			return writer.WriteRecordsJSON(records, out)
		}
		return writer.WriteRecordsCSV(records, out)
	}
	if err := common.WriteOutput(writer, root.SharedFlags.Output, root.SharedFlags.Format, write); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}
