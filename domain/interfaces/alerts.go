package interfaces

import "bank_e2e/domain/entities"

// DialogClassifier interprets the messages the app shows in native dialogs
type DialogClassifier interface {
	// Classify maps a dialog message to a verdict and extracts reported ids
	Classify(dialogType, message string) entities.DialogOutcome
}
