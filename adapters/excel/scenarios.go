package excel

import (
	"context"
	"fmt"
	"strings"

	"trialsize/domain/core"
	"trialsize/domain/samplesize"
	"trialsize/internal/errors"
	"trialsize/models"
)

// ScenarioColumn optionally names each row
const ScenarioColumn = "scenario"

// ScenarioReader turns workbook rows into calculator scenarios. Headers may use
// a field key, CLI flag or form label; columns it does not recognise are an error.
type ScenarioReader struct {
	reader *DataReader
	source string
}

// NewScenarioReader creates a reader for an xlsx or csv file
func NewScenarioReader(cfg ExcelConfig) *ScenarioReader {
	return &ScenarioReader{
		reader: NewDataReaderWithConfig(cfg),
		source: cfg.FilePath,
	}
}

// ReadScenarios implements ports.ScenarioReaderPort
func (s *ScenarioReader) ReadScenarios(ctx context.Context) ([]models.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.reader.ReadData()
	if err != nil {
		return nil, errors.ScenarioSourceError(s.source, err)
	}

	columns, err := mapColumns(data.Headers)
	if err != nil {
		return nil, errors.ScenarioSourceError(s.source, err)
	}

	scenarios := make([]models.Scenario, 0, len(data.Rows))
	for i, row := range data.Rows {
		rowNum := data.RowNums[i]
		raw := make(samplesize.RawParameters)
		var name string

		for header, value := range row {
			key, ok := columns[header]
			if !ok {
				continue
			}
			if key == ScenarioColumn {
				name = value
				continue
			}
			// Empty cells fall back to defaults, like a missing column
			if value != "" {
				raw[key] = value
			}
		}

		id, err := core.ParseScenarioID(name)
		if err != nil {
			id = core.ScenarioID(fmt.Sprintf("row-%d", rowNum))
		}

		scenarios = append(scenarios, models.Scenario{ID: id, Row: rowNum, Raw: raw})
	}

	return scenarios, nil
}

// mapColumns resolves each header to a field key. Two headers naming the same
// field are rejected since a row could not say which cell applies.
func mapColumns(headers []string) (map[string]string, error) {
	columns := make(map[string]string, len(headers))
	claimed := make(map[string]string, len(headers))
	var unknown, duplicates []string

	for _, h := range headers {
		if h == "" {
			continue
		}
		key := ScenarioColumn
		if !strings.EqualFold(h, ScenarioColumn) {
			f, ok := samplesize.LookupField(h)
			if !ok {
				unknown = append(unknown, h)
				continue
			}
			key = f.Key
		}
		if first, taken := claimed[key]; taken {
			duplicates = append(duplicates, fmt.Sprintf("duplicate column for %s: %s, %s", key, first, h))
			continue
		}
		claimed[key] = h
		columns[h] = key
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown columns: %s", strings.Join(unknown, ", "))
	}
	if len(duplicates) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(duplicates, "; "))
	}
	return columns, nil
}
