package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loglens/internal/models"
)

func record(msg string) models.LogRecord {
	return models.LogRecord{Level: models.LevelInfo, Message: msg}
}

func TestClassifyRole(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantRequest  bool
		wantResponse bool
	}{
		{
			name:        "request word with brace",
			message:     `Sending request {"OrderCode": "A1"}`,
			wantRequest: true,
		},
		{
			name:    "request word without brace is not a request",
			message: "request received on queue",
		},
		{
			name:        "input chain marker alone",
			message:     "InputChainData=payload",
			wantRequest: true,
		},
		{
			name:         "response word with brace",
			message:      `Got response {"Status": "Success"}`,
			wantResponse: true,
		},
		{
			name:         "response word with output chain marker",
			message:      "response OutputChainData follows",
			wantResponse: true,
		},
		{
			name:    "response word alone is not a response",
			message: "response pending",
		},
		{
			name:    "output chain marker without response word",
			message: "OutputChainData=payload",
		},
		{
			name:        "case insensitive request",
			message:     "REQUEST {data}",
			wantRequest: true,
		},
		{
			name:         "both roles on one line",
			message:      "request and response {mixed}",
			wantRequest:  true,
			wantResponse: true,
		},
		{
			name:    "neither",
			message: "2024-01-15 heartbeat ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role := ClassifyRole(record(tt.message))
			assert.Equal(t, tt.wantRequest, role.IsRequest, "IsRequest")
			assert.Equal(t, tt.wantResponse, role.IsResponse, "IsResponse")
		})
	}
}
