package alerts

import (
	"regexp"
	"strings"

	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"

	"github.com/sirupsen/logrus"
)

var reportedID = regexp.MustCompile(`(?i)(?:customer id|account number)\s*:\s*(\d+)`)

type Classifier struct {
	logger *logrus.Logger
}

func NewClassifier(logger *logrus.Logger) *Classifier {
	return &Classifier{
		logger: logger,
	}
}

func (c *Classifier) Classify(dialogType, message string) entities.DialogOutcome {
	outcome := entities.DialogOutcome{
		Type:    dialogType,
		Message: message,
		Verdict: entities.DialogUnknown,
	}

	switch {
	case c.isDuplicate(message):
		outcome.Verdict = entities.DialogDuplicate
	case c.isSuccess(message):
		outcome.Verdict = entities.DialogSuccess
	case c.isRejection(message):
		outcome.Verdict = entities.DialogRejected
	}

	if m := reportedID.FindStringSubmatch(message); m != nil {
		outcome.ID = m[1]
	}

	c.logger.WithFields(logrus.Fields{
		"type":    dialogType,
		"verdict": outcome.Verdict,
		"id":      outcome.ID,
	}).Debugf("Dialog: %s", message)

	return outcome
}

func (c *Classifier) isSuccess(message string) bool {
	lower := strings.ToLower(message)

	successKeywords := []string{
		"added successfully",
		"created successfully",
		"successful",
	}

	for _, keyword := range successKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

func (c *Classifier) isDuplicate(message string) bool {
	lower := strings.ToLower(message)

	// The app reports duplicates as a soft warning
	duplicateKeywords := []string{
		"may be duplicate",
		"already exists",
	}

	for _, keyword := range duplicateKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

func (c *Classifier) isRejection(message string) bool {
	lower := strings.ToLower(message)

	rejectionKeywords := []string{
		"please check",
		"invalid",
		"failed",
		"error",
	}

	for _, keyword := range rejectionKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}

// Ensure Classifier implements DialogClassifier interface
var _ interfaces.DialogClassifier = (*Classifier)(nil)
