package storage

import (
	"bank_e2e/domain/entities"
	"bank_e2e/domain/interfaces"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const reportFile = "report.json"

type resultStore struct {
	reportPath string
}

// NewResultStore - creates a report store under dir
func NewResultStore(dir string) (interfaces.ResultStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}

	return &resultStore{
		reportPath: filepath.Join(dir, reportFile),
	}, nil
}

// SaveReport - saves the run report to file
func (s *resultStore) SaveReport(report entities.RunReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.reportPath, data, 0644)
}

// LoadReport - loads the last run report from file
func (s *resultStore) LoadReport() (*entities.RunReport, error) {
	data, err := os.ReadFile(s.reportPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &entities.RunReport{}, nil
		}
		return nil, err
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}

	return &report, nil
}
