// Package session holds the state of one analysis run: the parsed record
// stream, the derived transaction set and the tag vocabulary. Loading new
// input wholly replaces the previous state, it is never merged.
package session

import (
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"loglens/internal/correlator"
	"loglens/internal/logging"
	"loglens/internal/logparser"
	"loglens/internal/models"
)

// Session owns the records and transactions of a single analysis run. Only
// one correlation is ever active per session; there is no shared mutable
// state across sessions.
type Session struct {
	id       string
	engine   *correlator.Engine
	logger   logging.Logger
	loadedAt time.Time

	records      []models.LogRecord
	transactions []models.Transaction
}

// New creates an empty session. A nil engine gets default correlation
// settings, a nil logger logs at info.
func New(engine *correlator.Engine, logger logging.Logger) *Session {
	if engine == nil {
		engine = correlator.NewEngine(nil, 0, nil)
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		engine: engine,
		logger: logger.WithField(logging.FieldSession, id),
	}
}

// ID returns the session's run identifier.
func (s *Session) ID() string {
	return s.id
}

// Load parses the input and replaces all prior session state, including any
// previously derived transactions.
func (s *Session) Load(r io.Reader) error {
	records, err := logparser.Parse(r, s.logger)
	if err != nil {
		return err
	}
	s.replace(records)
	return nil
}

// LoadText is Load for an in-memory blob, e.g. pasted text.
func (s *Session) LoadText(text string) {
	s.replace(logparser.ParseText(text, s.logger))
}

func (s *Session) replace(records []models.LogRecord) {
	s.records = records
	s.transactions = nil
	s.loadedAt = time.Now()
	s.logger.Info("Loaded records",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
}

// Records returns the parsed records in stable input order.
func (s *Session) Records() []models.LogRecord {
	return s.records
}

// Correlate derives the transaction set from the current records, replacing
// any previous set. Re-running over unchanged records yields an identical
// result.
func (s *Session) Correlate() []models.Transaction {
	s.transactions = s.engine.Correlate(s.records)
	return s.transactions
}

// Transactions returns the current transaction set, correlating first if it
// has not been derived yet for the loaded records.
func (s *Session) Transactions() []models.Transaction {
	if s.transactions == nil {
		return s.Correlate()
	}
	return s.transactions
}

// Tags returns the distinct non-empty tags across all records, in first-seen
// order. The order is deterministic because the record order is stable.
func (s *Session) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, rec := range s.records {
		if rec.Tag == "" || seen[rec.Tag] {
			continue
		}
		seen[rec.Tag] = true
		tags = append(tags, rec.Tag)
	}
	return tags
}

// RecordFilter selects records; zero-value fields match everything.
type RecordFilter struct {
	Level     models.LogLevel
	Tag       string
	Substring string
}

// FilterRecords returns the records matching every set criterion, preserving
// input order. Pure derived state; the underlying records are untouched.
func (s *Session) FilterRecords(f RecordFilter) []models.LogRecord {
	var out []models.LogRecord
	for _, rec := range s.records {
		if f.Level != "" && rec.Level != f.Level {
			continue
		}
		if f.Tag != "" && rec.Tag != f.Tag {
			continue
		}
		if f.Substring != "" && !strings.Contains(strings.ToLower(rec.Message), strings.ToLower(f.Substring)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// TransactionFilter selects transactions; zero-value fields match everything.
type TransactionFilter struct {
	Status    models.TxStatus
	Basis     models.MatchBasis
	Substring string
}

// FilterTransactions returns the transactions matching every set criterion,
// preserving the newest-first order.
func (s *Session) FilterTransactions(f TransactionFilter) []models.Transaction {
	var out []models.Transaction
	for _, tx := range s.Transactions() {
		if f.Status != "" && tx.Status != f.Status {
			continue
		}
		if f.Basis != "" && tx.MatchBasis != f.Basis {
			continue
		}
		if f.Substring != "" && !transactionContains(tx, f.Substring) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func transactionContains(tx models.Transaction, substring string) bool {
	needle := strings.ToLower(substring)
	if strings.Contains(strings.ToLower(tx.Request.Message), needle) {
		return true
	}
	return tx.Response != nil &&
		strings.Contains(strings.ToLower(tx.Response.Message), needle)
}

// LoadedAt reports when the current record set was ingested. Used as the
// sorting fallback for records without a parseable timestamp.
func (s *Session) LoadedAt() time.Time {
	return s.loadedAt
}
