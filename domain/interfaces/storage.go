package interfaces

import "bank_e2e/domain/entities"

// TestDataStore provides the read-only fixtures
type TestDataStore interface {
	// Load returns the fixtures, reading them at most once
	Load() (*entities.TestData, error)
}

// ResultStore persists run reports
type ResultStore interface {
	// SaveReport writes the report of a run
	SaveReport(report entities.RunReport) error

	// LoadReport reads the last saved report
	LoadReport() (*entities.RunReport, error)
}
