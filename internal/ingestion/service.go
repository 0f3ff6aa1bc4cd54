// Package ingestion turns uploaded CSV/XLSX files into normalized datasets
// and runs the validation passes over the session they land in.
package ingestion

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rohittcodes/data-alchemist/internal/domain"
	"github.com/rohittcodes/data-alchemist/internal/normalize"
	"github.com/rohittcodes/data-alchemist/internal/session"
	"github.com/rohittcodes/data-alchemist/internal/validation"
)

// ErrUnsupportedFormat is returned when an uploaded file is not CSV or XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Service ingests tabular uploads into sessions.
type Service struct {
	store *session.Store
}

// NewService creates an ingestion service backed by the session store.
func NewService(store *session.Store) *Service {
	return &Service{store: store}
}

// Request describes one upload. A nil SessionID starts a new session.
type Request struct {
	SessionID *uuid.UUID
	DataType  domain.EntityType
	FileName  string
	Data      io.Reader
}

// Result reports what the upload produced: the session it landed in, the
// normalized dataset shape, and a fresh validation summary across everything
// the session now holds.
type Result struct {
	SessionID uuid.UUID         `json:"sessionId"`
	DataType  domain.EntityType `json:"dataType"`
	Headers   []string          `json:"headers"`
	RowCount  int               `json:"rowCount"`
	Summary   domain.Summary    `json:"validation"`
}

// Ingest parses the file, normalizes headers onto canonical field names,
// stores the dataset in the session, and re-validates everything the session
// holds.
func (s *Service) Ingest(req Request) (Result, error) {
	if !req.DataType.Valid() {
		return Result{}, fmt.Errorf("unknown data type %q", req.DataType)
	}
	if req.Data == nil {
		return Result{}, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(req.Data)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return Result{}, errors.New("file is empty")
	}

	records, err := parseRecords(req.FileName, payload)
	if err != nil {
		return Result{}, err
	}

	dataset, err := BuildDataset(req.DataType, records)
	if err != nil {
		return Result{}, err
	}
	dataset.FileName = req.FileName

	id := uuid.Nil
	if req.SessionID != nil {
		id = *req.SessionID
	} else {
		created, err := s.store.Create()
		if err != nil {
			return Result{}, err
		}
		id = created.ID
	}

	// Store the dataset under the session lock so a concurrent auto-fix or
	// second upload cannot drop this write.
	sess, err := s.store.Update(id, func(sess *session.Session) error {
		return sess.Datasets.Set(dataset)
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		SessionID: sess.ID,
		DataType:  req.DataType,
		Headers:   dataset.Headers,
		RowCount:  dataset.RowCount,
		Summary:   validation.Run(sess.Datasets),
	}, nil
}

// BuildDataset converts raw parsed records into a dataset keyed by canonical
// field names. The first non-blank row is the header. Distinct headers that
// normalize onto the same canonical name collapse with the last column
// winning; the collision is tolerated, not reported.
func BuildDataset(entityType domain.EntityType, records [][]string) (domain.Dataset, error) {
	var headerRow []string
	var dataRows [][]string
	for _, record := range records {
		if isBlankRow(record) {
			continue
		}
		if headerRow == nil {
			headerRow = record
			continue
		}
		dataRows = append(dataRows, record)
	}
	if headerRow == nil {
		return domain.Dataset{}, errors.New("no header row detected")
	}

	headers := normalize.Headers(headerRow)

	rows := make([]domain.Row, 0, len(dataRows))
	for _, record := range dataRows {
		record = padRow(record, len(headers))
		row := make(domain.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				row[header] = nil
				continue
			}
			row[header] = cell
		}
		rows = append(rows, row)
	}

	return domain.NewDataset(entityType, headers, rows), nil
}

func parseRecords(fileName string, payload []byte) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

func parseExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}
