// Package report exports analysis results as CSV or JSON for downstream
// tooling. Rows are flattened to strings so the output is stable regardless
// of locale or zero-value quirks.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"loglens/internal/logging"
	"loglens/internal/models"
	"loglens/internal/parsererror"
)

// timestampLayout is the canonical output format for timestamps.
const timestampLayout = "2006-01-02 15:04:05.000"

// TransactionRow is the flattened CSV shape of one transaction.
type TransactionRow struct {
	ID              string `csv:"id"`
	Timestamp       string `csv:"timestamp"`
	DurationMillis  int64  `csv:"duration_ms"`
	Status          string `csv:"status"`
	MatchBasis      string `csv:"match_basis"`
	RequestTag      string `csv:"request_tag"`
	RequestMessage  string `csv:"request_message"`
	ResponseMessage string `csv:"response_message"`
}

// RecordRow is the flattened CSV shape of one log record.
type RecordRow struct {
	Timestamp string `csv:"timestamp"`
	Level     string `csv:"level"`
	Tag       string `csv:"tag"`
	Message   string `csv:"message"`
}

func formatStamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

// TransactionRows flattens transactions into CSV rows, preserving order.
func TransactionRows(transactions []models.Transaction) []TransactionRow {
	rows := make([]TransactionRow, 0, len(transactions))
	for _, tx := range transactions {
		row := TransactionRow{
			ID:             tx.ID,
			Timestamp:      formatStamp(tx.Timestamp),
			DurationMillis: tx.DurationMillis,
			Status:         string(tx.Status),
			MatchBasis:     string(tx.MatchBasis),
			RequestTag:     tx.Request.Tag,
			RequestMessage: tx.Request.Message,
		}
		if tx.Response != nil {
			row.ResponseMessage = tx.Response.Message
		}
		rows = append(rows, row)
	}
	return rows
}

// RecordRows flattens records into CSV rows, preserving order.
func RecordRows(records []models.LogRecord) []RecordRow {
	rows := make([]RecordRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RecordRow{
			Timestamp: formatStamp(rec.Timestamp),
			Level:     string(rec.Level),
			Tag:       rec.Tag,
			Message:   rec.Message,
		})
	}
	return rows
}

// Writer exports records and transactions with a configured delimiter.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter builds a Writer. A zero delimiter means comma; a nil logger
// logs at info.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

func (w *Writer) marshalCSV(rows interface{}, out io.Writer) error {
	writer := csv.NewWriter(out)
	writer.Comma = w.delimiter
	return gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(writer))
}

// WriteTransactionsCSV writes the transaction set as CSV.
func (w *Writer) WriteTransactionsCSV(transactions []models.Transaction, out io.Writer) error {
	rows := TransactionRows(transactions)
	if err := w.marshalCSV(&rows, out); err != nil {
		return fmt.Errorf("error writing transactions CSV: %w", err)
	}
	w.logger.Info("Wrote transactions CSV",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// WriteRecordsCSV writes the record stream as CSV.
func (w *Writer) WriteRecordsCSV(records []models.LogRecord, out io.Writer) error {
	rows := RecordRows(records)
	if err := w.marshalCSV(&rows, out); err != nil {
		return fmt.Errorf("error writing records CSV: %w", err)
	}
	w.logger.Info("Wrote records CSV",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// WriteTransactionsJSON writes the transaction set as indented JSON.
func (w *Writer) WriteTransactionsJSON(transactions []models.Transaction, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transactions); err != nil {
		return fmt.Errorf("error writing transactions JSON: %w", err)
	}
	return nil
}

// WriteRecordsJSON writes the record stream as indented JSON.
func (w *Writer) WriteRecordsJSON(records []models.LogRecord, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("error writing records JSON: %w", err)
	}
	return nil
}

// WriteToFile opens path (creating parent directories) and passes the file
// to write. Failures come back as ExportError.
func (w *Writer) WriteToFile(path, format string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &parsererror.ExportError{Format: format, Path: path, Err: err}
		}
	}
	file, err := os.Create(path) // #nosec G304 -- output path from CLI flag
	if err != nil {
		return &parsererror.ExportError{Format: format, Path: path, Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			w.logger.WithError(err).Warn("Failed to close output file")
		}
	}()

	if err := write(file); err != nil {
		return &parsererror.ExportError{Format: format, Path: path, Err: err}
	}
	return nil
}
