package classifier

import (
	"regexp"

	"loglens/internal/models"
)

var (
	statusFieldPattern     = regexp.MustCompile(`"Status"\s*:\s*"([^"]*)"`)
	returnCodeFieldPattern = regexp.MustCompile(`"ReturnCode"\s*:\s*"(API[^"]*)"`)
)

// successReturnCode is the only API return code that counts as success.
const successReturnCode = "API0001"

// ClassifyStatus decides success or error for a matched response record.
// First applicable rule wins: an ERROR level trumps everything, then an
// explicit Status field, then a non-success ReturnCode; anything else is
// optimistically a success.
func ClassifyStatus(response models.LogRecord) models.TxStatus {
	if response.Level == models.LevelError {
		return models.StatusError
	}

	if m := statusFieldPattern.FindStringSubmatch(response.Message); m != nil {
		if m[1] == "Success" {
			return models.StatusSuccess
		}
		return models.StatusError
	}

	if m := returnCodeFieldPattern.FindStringSubmatch(response.Message); m != nil {
		if m[1] != successReturnCode {
			return models.StatusError
		}
	}

	return models.StatusSuccess
}
