package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loglens/internal/models"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name    string
		level   models.LogLevel
		message string
		want    models.TxStatus
	}{
		{
			name:    "error level wins over success field",
			level:   models.LevelError,
			message: `response {"Status": "Success"}`,
			want:    models.StatusError,
		},
		{
			name:    "status success",
			level:   models.LevelInfo,
			message: `response {"Status": "Success"}`,
			want:    models.StatusSuccess,
		},
		{
			name:    "status failed",
			level:   models.LevelInfo,
			message: `response {"Status": "Failed"}`,
			want:    models.StatusError,
		},
		{
			name:    "status field wins over return code",
			level:   models.LevelInfo,
			message: `response {"Status": "Success", "ReturnCode": "API9999"}`,
			want:    models.StatusSuccess,
		},
		{
			name:    "return code api0001 is success",
			level:   models.LevelInfo,
			message: `response {"ReturnCode": "API0001"}`,
			want:    models.StatusSuccess,
		},
		{
			name:    "other return code is error",
			level:   models.LevelInfo,
			message: `response {"ReturnCode": "API0500"}`,
			want:    models.StatusError,
		},
		{
			name:    "non-api return code ignored",
			level:   models.LevelInfo,
			message: `response {"ReturnCode": "500"}`,
			want:    models.StatusSuccess,
		},
		{
			name:    "default is success",
			level:   models.LevelWarn,
			message: "response { no fields }",
			want:    models.StatusSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.LogRecord{Level: tt.level, Message: tt.message}
			assert.Equal(t, tt.want, ClassifyStatus(rec))
		})
	}
}
