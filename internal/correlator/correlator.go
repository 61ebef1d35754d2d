// Package correlator reconstructs request/response transactions from an
// ordered stream of parsed log records. Matching is best-effort: keys first,
// then temporal proximity inside a bounded window.
package correlator

import (
	"fmt"
	"sort"
	"time"

	"loglens/internal/classifier"
	"loglens/internal/extractor"
	"loglens/internal/logging"
	"loglens/internal/models"
)

// DefaultWindow bounds the temporal fallback: a response only pairs with a
// request that precedes it by less than this much.
const DefaultWindow = 10 * time.Second

// timeBasisLabel is the id prefix for transactions matched by proximity.
const timeBasisLabel = "time"

// Engine correlates a record stream into transactions. All matching state is
// local to a Correlate call, so independent runs never contaminate each
// other.
type Engine struct {
	extractor *extractor.Extractor
	window    time.Duration
	logger    logging.Logger
}

// NewEngine builds an Engine. A nil extractor uses the default field
// allow-list, a zero window uses DefaultWindow, a nil logger logs at info.
func NewEngine(ext *extractor.Extractor, window time.Duration, logger logging.Logger) *Engine {
	if ext == nil {
		ext = extractor.New()
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Engine{extractor: ext, window: window, logger: logger}
}

// pendingRequest is one entry of the time-ordered fallback list. Requests
// land here even when they carry no keys.
type pendingRequest struct {
	record *models.LogRecord
	keys   []models.IdentifierKey
}

// Correlate runs one full pass over records and returns the matched
// transactions, newest first. Unmatched requests are not materialized;
// unmatched responses are dropped silently.
//
// The pass is strictly ordered and must not be parallelized: the key table
// and the fallback list are mutated with positional dependence on input
// order.
func (e *Engine) Correlate(records []models.LogRecord) []models.Transaction {
	keysFor := make([][]models.IdentifierKey, len(records))
	roles := make([]classifier.Role, len(records))
	for i := range records {
		keysFor[i] = e.extractor.ExtractKeys(records[i].Message)
		roles[i] = classifier.ClassifyRole(records[i])
	}

	// Index pass: register every request under each of its keys. Later
	// registrations overwrite earlier ones, assuming at most one
	// outstanding request per key at a time.
	keyIndex := make(map[models.IdentifierKey]*models.LogRecord)
	var requests []pendingRequest
	for i := range records {
		if !roles[i].IsRequest {
			continue
		}
		rec := &records[i]
		for _, key := range keysFor[i] {
			keyIndex[key] = rec
		}
		requests = append(requests, pendingRequest{record: rec, keys: keysFor[i]})
	}

	// matched tracks requests already owning a transaction, either basis.
	// consumedByKey additionally blocks a second key-based pairing with the
	// same request through one of its other keys.
	matched := make(map[*models.LogRecord]bool)
	consumedByKey := make(map[*models.LogRecord]bool)

	var transactions []models.Transaction

	// Match pass: each response searches by key first, then by proximity.
	for i := range records {
		if !roles[i].IsResponse {
			continue
		}
		response := &records[i]

		request, basisKey := e.matchByKey(keyIndex, consumedByKey, keysFor[i])
		basis := models.BasisKey
		if request == nil {
			request = e.matchByTime(requests, matched, response)
			basis = models.BasisTime
		}
		if request == nil {
			// No transaction for an orphan response.
			continue
		}

		tx := e.buildTransaction(request, response, basis, basisKey, len(transactions))
		matched[request] = true
		if basis == models.BasisKey {
			consumedByKey[request] = true
		}
		transactions = append(transactions, tx)
	}

	// Presentation contract: newest first. Stable so equal timestamps keep
	// match order, which makes repeated runs byte-identical.
	sort.SliceStable(transactions, func(a, b int) bool {
		return transactions[a].Timestamp.After(transactions[b].Timestamp)
	})

	e.logger.Info("Correlation completed",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return transactions
}

// matchByKey tries each response key in extraction order against the index.
// The first hit wins and its key is retired immediately so a second response
// cannot reuse it. Hits on a request already consumed by a key match are
// retired and skipped, keeping one key-based transaction per request.
func (e *Engine) matchByKey(
	keyIndex map[models.IdentifierKey]*models.LogRecord,
	consumedByKey map[*models.LogRecord]bool,
	keys []models.IdentifierKey,
) (*models.LogRecord, *models.IdentifierKey) {
	for i, key := range keys {
		request, ok := keyIndex[key]
		if !ok {
			continue
		}
		delete(keyIndex, key)
		if consumedByKey[request] {
			continue
		}
		return request, &keys[i]
	}
	return nil, nil
}

// matchByTime picks the not-yet-matched request with the smallest positive
// delta inside the window. A time match does not retire the request's keys,
// so a later key-based match against the same request stays possible.
func (e *Engine) matchByTime(
	requests []pendingRequest,
	matched map[*models.LogRecord]bool,
	response *models.LogRecord,
) *models.LogRecord {
	if !response.HasTimestamp() {
		return nil
	}

	var best *models.LogRecord
	var bestDelta time.Duration
	for _, pending := range requests {
		if matched[pending.record] || !pending.record.HasTimestamp() {
			continue
		}
		delta := response.Timestamp.Sub(pending.record.Timestamp)
		if delta <= 0 || delta >= e.window {
			continue
		}
		if best == nil || delta < bestDelta {
			best = pending.record
			bestDelta = delta
		}
	}
	return best
}

func (e *Engine) buildTransaction(
	request, response *models.LogRecord,
	basis models.MatchBasis,
	basisKey *models.IdentifierKey,
	seq int,
) models.Transaction {
	label := timeBasisLabel
	if basisKey != nil {
		label = basisKey.Value
	}

	return models.Transaction{
		ID:             label + "-" + responseStamp(response, seq),
		Request:        request,
		Response:       response,
		DurationMillis: durationMillis(request, response),
		Status:         classifier.ClassifyStatus(*response),
		MatchBasis:     basis,
		Timestamp:      request.Timestamp,
	}
}

// responseStamp renders the response timestamp for the transaction id, with
// a sequence fallback when the timestamp never parsed.
func responseStamp(response *models.LogRecord, seq int) string {
	if !response.HasTimestamp() {
		return fmt.Sprintf("seq%d", seq)
	}
	return response.Timestamp.Format("2006-01-02T15:04:05.000")
}

// durationMillis clamps to 0 when either timestamp is absent or the
// difference comes out negative.
func durationMillis(request, response *models.LogRecord) int64 {
	if !request.HasTimestamp() || !response.HasTimestamp() {
		return 0
	}
	d := response.Timestamp.Sub(request.Timestamp).Milliseconds()
	if d < 0 {
		return 0
	}
	return d
}

// Correlate runs a one-off engine with default settings over records.
func Correlate(records []models.LogRecord) []models.Transaction {
	return NewEngine(nil, 0, nil).Correlate(records)
}
