package alerts

import (
	"io"
	"testing"

	"bank_e2e/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c := NewClassifier(logger)

	tests := []struct {
		name    string
		message string
		verdict entities.DialogVerdict
		id      string
	}{
		{"customer added", "Customer added successfully with customer id :6", entities.DialogSuccess, "6"},
		{"account created", "Account created successfully with account Number :1016", entities.DialogSuccess, "1016"},
		{"duplicate customer", "Please check the details. Customer may be duplicate.", entities.DialogDuplicate, ""},
		{"rejected", "Please check the details.", entities.DialogRejected, ""},
		{"unrelated", "Are you sure?", entities.DialogUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := c.Classify("alert", tt.message)
			assert.Equal(t, tt.verdict, outcome.Verdict)
			assert.Equal(t, tt.id, outcome.ID)
			assert.Equal(t, "alert", outcome.Type)
			assert.Equal(t, tt.message, outcome.Message)
		})
	}
}
