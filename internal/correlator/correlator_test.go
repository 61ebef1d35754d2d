package correlator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loglens/internal/logging"
	"loglens/internal/logparser"
	"loglens/internal/models"
)

func parseLines(t *testing.T, lines ...string) []models.LogRecord {
	t.Helper()
	records := make([]models.LogRecord, 0, len(lines))
	for _, line := range lines {
		records = append(records, logparser.ParseLine(line))
	}
	return records
}

func testEngine() *Engine {
	return NewEngine(nil, 0, logging.NewMockLogger())
}

func TestCorrelate_KeyMatch(t *testing.T) {
	records := parseLines(t,
		`2024-01-01 10:00:00 INFO order: request {"OrderCode": "ABC123"}`,
		`2024-01-01 10:00:02 INFO order: response {"OrderCode": "ABC123", "Status": "Success"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	tx := transactions[0]
	assert.Equal(t, models.BasisKey, tx.MatchBasis)
	assert.Equal(t, models.StatusSuccess, tx.Status)
	assert.Equal(t, int64(2000), tx.DurationMillis)
	assert.Same(t, &records[0], tx.Request)
	assert.Same(t, &records[1], tx.Response)
	assert.Equal(t, "ABC123-2024-01-01T10:00:02.000", tx.ID)
}

func TestCorrelate_NumericFallbackKey(t *testing.T) {
	records := parseLines(t,
		"2024-01-01 10:00:00 INFO svc: request {987654321}",
		"2024-01-01 10:00:01 ERROR svc: response {987654321}",
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Equal(t, models.BasisKey, transactions[0].MatchBasis)
	assert.Equal(t, models.StatusError, transactions[0].Status)
}

func TestCorrelate_TemporalFallback(t *testing.T) {
	records := parseLines(t,
		"2024-01-01 00:00:00 INFO gateway: request { start }",
		"2024-01-01 00:00:03 INFO gateway: response { done }",
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Equal(t, models.BasisTime, transactions[0].MatchBasis)
	assert.Equal(t, int64(3000), transactions[0].DurationMillis)
}

func TestCorrelate_WindowExceeded(t *testing.T) {
	records := parseLines(t,
		"2024-01-01 00:00:00 INFO gateway: request { start }",
		"2024-01-01 00:00:15 INFO gateway: response { done }",
	)

	assert.Empty(t, testEngine().Correlate(records))
}

func TestCorrelate_OrphanResponseDropped(t *testing.T) {
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO order: response {"OrderCode": "NOBODY"}`,
	)

	assert.Empty(t, testEngine().Correlate(records))
}

func TestCorrelate_UnmatchedRequestNotMaterialized(t *testing.T) {
	// The strict policy: requests without a response never become pending
	// transactions.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO order: request {"OrderCode": "LONELY"}`,
	)

	assert.Empty(t, testEngine().Correlate(records))
}

func TestCorrelate_KeyRetiredAfterConsumption(t *testing.T) {
	// The second response cannot reuse the consumed key and the only
	// request is already matched, so no second transaction appears.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "ONCE01"}`,
		`2024-01-01 00:00:01 INFO response {"OrderCode": "ONCE01"}`,
		`2024-01-01 00:00:02 INFO response {"OrderCode": "ONCE01"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Same(t, &records[1], transactions[0].Response)
}

func TestCorrelate_LastRegistrationWins(t *testing.T) {
	// Two outstanding requests under the same key: the later registration
	// overwrites the earlier one.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "DUP11"}`,
		`2024-01-01 00:00:01 INFO request {"OrderCode": "DUP11"}`,
		`2024-01-01 00:00:02 INFO response {"OrderCode": "DUP11"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Same(t, &records[1], transactions[0].Request)
}

func TestCorrelate_TimeMatchKeepsKeysAlive(t *testing.T) {
	// A temporal match does not retire the request's keys, so a later
	// key-based match against the same request remains possible.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "XYZ90"}`,
		"2024-01-01 00:00:02 INFO response { plain }",
		`2024-01-01 00:00:05 INFO response {"OrderCode": "XYZ90"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 2)
	// Both transactions share the request timestamp, so the stable sort
	// keeps production order: time match first, key match second.
	assert.Equal(t, models.BasisTime, transactions[0].MatchBasis)
	assert.Equal(t, models.BasisKey, transactions[1].MatchBasis)
	assert.Same(t, transactions[0].Request, transactions[1].Request)
}

func TestCorrelate_KeyConsumedRequestNotRematchedByOtherKey(t *testing.T) {
	// A request registered under two keys yields only one key-based
	// transaction even when a second response carries its other key.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "AA1", "TSCode": "TS1"}`,
		`2024-01-01 00:00:01 INFO response {"OrderCode": "AA1"}`,
		`2024-01-01 00:00:20 INFO response {"TSCode": "TS1"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Equal(t, models.BasisKey, transactions[0].MatchBasis)
}

func TestCorrelate_ClosestRequestWinsTemporalFallback(t *testing.T) {
	records := parseLines(t,
		"2024-01-01 00:00:00 INFO request { a }",
		"2024-01-01 00:00:04 INFO request { b }",
		"2024-01-01 00:00:05 INFO response { c }",
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Same(t, &records[1], transactions[0].Request)
	assert.Equal(t, int64(1000), transactions[0].DurationMillis)
}

func TestCorrelate_DurationClampedToZero(t *testing.T) {
	t.Run("response before request by key", func(t *testing.T) {
		records := parseLines(t,
			`2024-01-01 00:00:05 INFO request {"OrderCode": "BACK1"}`,
			`2024-01-01 00:00:00 INFO response {"OrderCode": "BACK1"}`,
		)

		transactions := testEngine().Correlate(records)
		require.Len(t, transactions, 1)
		assert.Equal(t, int64(0), transactions[0].DurationMillis)
	})

	t.Run("request without timestamp", func(t *testing.T) {
		records := parseLines(t,
			`INFO request {"OrderCode": "NOTS1"}`,
			`2024-01-01 00:00:01 INFO response {"OrderCode": "NOTS1"}`,
		)

		transactions := testEngine().Correlate(records)
		require.Len(t, transactions, 1)
		assert.Equal(t, int64(0), transactions[0].DurationMillis)
	})
}

func TestCorrelate_SortedNewestFirst(t *testing.T) {
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "OLD1"}`,
		`2024-01-01 00:00:01 INFO response {"OrderCode": "OLD1"}`,
		`2024-01-01 01:00:00 INFO request {"OrderCode": "NEW1"}`,
		`2024-01-01 01:00:01 INFO response {"OrderCode": "NEW1"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 2)
	assert.Equal(t, time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC), transactions[0].Timestamp)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), transactions[1].Timestamp)
}

func TestCorrelate_Idempotent(t *testing.T) {
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"OrderCode": "IDEM1"}`,
		"2024-01-01 00:00:01 INFO request { keyless }",
		`2024-01-01 00:00:02 INFO response {"OrderCode": "IDEM1"}`,
		"2024-01-01 00:00:03 INFO response { keyless }",
	)

	engine := testEngine()
	first := engine.Correlate(records)
	second := engine.Correlate(records)

	assert.Equal(t, first, second)
}

func TestCorrelate_CustomWindow(t *testing.T) {
	records := parseLines(t,
		"2024-01-01 00:00:00 INFO request { a }",
		"2024-01-01 00:00:15 INFO response { b }",
	)

	wide := NewEngine(nil, 30*time.Second, logging.NewMockLogger())
	transactions := wide.Correlate(records)

	require.Len(t, transactions, 1)
	assert.Equal(t, models.BasisTime, transactions[0].MatchBasis)
}

func TestCorrelate_MatchBasisRecordsFirstKey(t *testing.T) {
	// With several candidate keys on the response, the id reflects the one
	// that matched first in extraction order.
	records := parseLines(t,
		`2024-01-01 00:00:00 INFO request {"TSCode": "TSX1", "OrderCode": "OCX1"}`,
		`2024-01-01 00:00:01 INFO response {"TSCode": "TSX1", "OrderCode": "OCX1"}`,
	)

	transactions := testEngine().Correlate(records)

	require.Len(t, transactions, 1)
	assert.Equal(t, "TSX1-2024-01-01T00:00:01.000", transactions[0].ID)
}
