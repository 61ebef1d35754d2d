// Package classifier decides what part a log record plays in a transaction:
// whether it is a request or a response, and whether a matched response
// means success or failure. Classification is lexical, over the raw message.
package classifier

import (
	"strings"

	"loglens/internal/models"
)

// Chain payload markers emitted by services that do not spell out
// "request"/"response" in their log lines.
const (
	inputChainMarker  = "InputChainData"
	outputChainMarker = "OutputChainData"
)

// Role is the (non-exclusive) request/response classification of a record.
// A record can be neither.
type Role struct {
	IsRequest  bool
	IsResponse bool
}

// ClassifyRole inspects a record's message for request/response cues.
//
// The two sides are deliberately asymmetric: a request needs both the word
// and a payload brace unless the chain marker is present, while a response
// accepts the word with either a brace or its chain marker.
func ClassifyRole(record models.LogRecord) Role {
	msg := record.Message
	lower := strings.ToLower(msg)
	hasBrace := strings.Contains(msg, "{")

	return Role{
		IsRequest: (strings.Contains(lower, "request") && hasBrace) ||
			strings.Contains(msg, inputChainMarker),
		IsResponse: strings.Contains(lower, "response") &&
			(hasBrace || strings.Contains(msg, outputChainMarker)),
	}
}
