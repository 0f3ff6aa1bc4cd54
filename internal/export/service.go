// Package export serializes a session's cleaned datasets and rules as CSV,
// XLSX, JSON, or a ZIP bundle of all three.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/session"
	"github.com/rohittcodes/data-alchemist/internal/validation"
)

// Format selects the export serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatJSON Format = "json"
	FormatZIP  Format = "zip"
)

// ErrUnsupportedFormat is returned for formats outside the known set.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ErrNothingToExport is returned when the session holds no datasets.
var ErrNothingToExport = errors.New("session has no datasets to export")

// File is one produced artifact.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service renders exports synchronously; session payloads are small enough
// that a job queue would be overhead.
type Service struct {
	now func() time.Time
}

// NewService creates an export service.
func NewService() *Service {
	return &Service{now: time.Now}
}

// Export renders the session in the requested format. CSV exports bundle one
// file per dataset inside a ZIP when more than one dataset is present.
func (s *Service) Export(sess session.Session, format Format) (File, error) {
	datasets := presentDatasets(sess.Datasets)
	if len(datasets) == 0 {
		return File{}, ErrNothingToExport
	}

	stamp := s.now().Format("20060102-150405")

	switch format {
	case FormatCSV:
		if len(datasets) == 1 {
			data, err := renderCSV(*datasets[0])
			if err != nil {
				return File{}, err
			}
			return File{
				Name:        fmt.Sprintf("%s-%s.csv", datasets[0].Type, stamp),
				ContentType: "text/csv",
				Data:        data,
			}, nil
		}
		return s.renderBundle(sess, stamp, false)

	case FormatXLSX:
		data, err := renderXLSX(datasets)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("data-alchemist-%s.xlsx", stamp),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil

	case FormatJSON:
		data, err := renderJSON(sess)
		if err != nil {
			return File{}, err
		}
		return File{
			Name:        fmt.Sprintf("data-alchemist-%s.json", stamp),
			ContentType: "application/json",
			Data:        data,
		}, nil

	case FormatZIP:
		return s.renderBundle(sess, stamp, true)
	}

	return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func presentDatasets(datasets domain.Datasets) []*domain.Dataset {
	var present []*domain.Dataset
	for _, entityType := range domain.EntityTypes() {
		if ds := datasets.Get(entityType); ds != nil {
			present = append(present, ds)
		}
	}
	return present
}

func renderCSV(dataset domain.Dataset) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(dataset.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range dataset.Rows {
		record := make([]string, len(dataset.Headers))
		for i, header := range dataset.Headers {
			record[i] = cellString(row[header])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func renderXLSX(datasets []*domain.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, dataset := range datasets {
		sheet := string(dataset.Type)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("failed to name sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, fmt.Errorf("failed to add sheet: %w", err)
			}
		}

		header := make([]any, len(dataset.Headers))
		for col, name := range dataset.Headers {
			header[col] = name
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write header row: %w", err)
		}

		for rowIdx, row := range dataset.Rows {
			record := make([]any, len(dataset.Headers))
			for col, name := range dataset.Headers {
				record[col] = row[name]
			}
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address row: %w", err)
			}
			if err := f.SetSheetRow(sheet, cell, &record); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type jsonExport struct {
	SessionID  string          `json:"sessionId"`
	ExportedAt time.Time       `json:"exportedAt"`
	Datasets   domain.Datasets `json:"datasets"`
	Rules      []domain.Rule   `json:"rules"`
	Validation domain.Summary  `json:"validation"`
}

func renderJSON(sess session.Session) ([]byte, error) {
	payload := jsonExport{
		SessionID:  sess.ID.String(),
		ExportedAt: time.Now(),
		Datasets:   sess.Datasets,
		Rules:      sess.Rules,
		Validation: validation.Run(sess.Datasets),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return data, nil
}

// renderBundle packs per-dataset CSVs plus, when includeRules is set, the
// rules and validation summary JSON into one ZIP.
func (s *Service) renderBundle(sess session.Session, stamp string, includeRules bool) (File, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, dataset := range presentDatasets(sess.Datasets) {
		data, err := renderCSV(*dataset)
		if err != nil {
			return File{}, err
		}
		entry, err := w.Create(fmt.Sprintf("%s.csv", dataset.Type))
		if err != nil {
			return File{}, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := entry.Write(data); err != nil {
			return File{}, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}

	if includeRules {
		rulesData, err := json.MarshalIndent(sess.Rules, "", "  ")
		if err != nil {
			return File{}, fmt.Errorf("failed to encode rules: %w", err)
		}
		entry, err := w.Create("rules.json")
		if err != nil {
			return File{}, fmt.Errorf("failed to create rules entry: %w", err)
		}
		if _, err := entry.Write(rulesData); err != nil {
			return File{}, fmt.Errorf("failed to write rules entry: %w", err)
		}

		summaryData, err := json.MarshalIndent(validation.Run(sess.Datasets), "", "  ")
		if err != nil {
			return File{}, fmt.Errorf("failed to encode validation summary: %w", err)
		}
		entry, err = w.Create("validation.json")
		if err != nil {
			return File{}, fmt.Errorf("failed to create validation entry: %w", err)
		}
		if _, err := entry.Write(summaryData); err != nil {
			return File{}, fmt.Errorf("failed to write validation entry: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return File{}, fmt.Errorf("failed to finalize zip: %w", err)
	}

	return File{
		Name:        fmt.Sprintf("data-alchemist-%s.zip", stamp),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}, nil
}

func cellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
