// Package tags handles the tag vocabulary command.
package tags

import (
	"fmt"

	"github.com/spf13/cobra"

	"loglens/cmd/common"
	"loglens/cmd/root"
	"loglens/internal/logging"
)

// Cmd represents the tags command.
var Cmd = &cobra.Command{
	Use:   "tags",
	Short: "List the distinct tags observed in a log file",
	Long: `Parse a log file and print the distinct non-empty tags in
first-seen order, one per line. This is the vocabulary callers can filter
records by.`,
	Run: tagsFunc,
}

func tagsFunc(cmd *cobra.Command, args []string) {
	log := logging.NewLogrusAdapterFromLogger(root.Log)

	if root.SharedFlags.Input == "" {
		log.Fatal("No input file given, use --input")
	}

	s := common.NewSession(root.Cfg, log)
	if err := common.LoadInputFile(s, root.SharedFlags.Input, log); err != nil {
		log.Fatalf("Error reading input file: %v", err)
	}

	for _, tag := range s.Tags() {
		fmt.Println(tag)
	}
}
