// Package importer ingests donor records from uploaded CSV or XLSX files, the
// surface behind the external CRM-sync collaborator.
package importer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fundrazor/fundrazor/internal/db"
	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"
)

var (
	// ErrUnsupportedFormat is returned when an uploaded file is not supported.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// Service imports donor rows into the person repository.
type Service struct {
	persons repository.PersonRepository

	// runTx, when set, scopes a single row's read-modify-write upsert. Left
	// nil, upserts run directly against the persons repository.
	runTx func(ctx context.Context, fn func(repository.PersonRepository) error) error
}

// NewService creates a new import service.
func NewService(persons repository.PersonRepository) *Service {
	return &Service{persons: persons}
}

// NewTransactedService creates an import service that wraps each row's upsert
// in its own transaction on conn, so a lookup and the write it decides on see
// a consistent view and a partially applied row never persists.
func NewTransactedService(conn *db.Connection) *Service {
	return &Service{
		persons: repository.NewPersonRepository(conn.Pool),
		runTx: func(ctx context.Context, fn func(repository.PersonRepository) error) error {
			return conn.WithTx(ctx, func(tx pgx.Tx) error {
				return fn(repository.NewPersonRepository(tx))
			})
		},
	}
}

// Request describes the import input.
type Request struct {
	FileName string
	Data     io.Reader
}

// RowError captures a row level issue that occurred during import.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Summary returns import level metrics.
type Summary struct {
	TotalRows int        `json:"totalRows"`
	Imported  int        `json:"imported"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors"`
}

// Import parses the uploaded file and upserts donors. Rows with an email
// matching an existing person (case-insensitive) update that record; all other
// rows insert. Malformed rows are reported per-row without aborting the batch.
func (s *Service) Import(ctx context.Context, req Request) (Summary, error) {
	rows, err := readRows(req)
	if err != nil {
		return Summary{}, err
	}
	if len(rows) == 0 {
		return Summary{Errors: []RowError{}}, nil
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Errors: []RowError{}}
	for i, row := range rows[1:] {
		rowNumber := i + 2 // 1-based, after the header row
		summary.TotalRows++

		person, err := columns.person(row)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}

		if err := s.upsertScope(ctx, func(persons repository.PersonRepository) error {
			return upsert(ctx, persons, person)
		}); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, RowError{Row: rowNumber, Message: err.Error()})
			continue
		}
		summary.Imported++
	}

	return summary, nil
}

func (s *Service) upsertScope(ctx context.Context, fn func(repository.PersonRepository) error) error {
	if s.runTx != nil {
		return s.runTx(ctx, fn)
	}
	return fn(s.persons)
}

func upsert(ctx context.Context, persons repository.PersonRepository, person domain.Person) error {
	if person.HasEmail() {
		existing, err := persons.GetByEmail(ctx, strings.TrimSpace(*person.Email))
		if err == nil {
			existing.FirstName = person.FirstName
			existing.LastName = person.LastName
			existing.Phone = person.Phone
			existing.Organization = person.Organization
			existing.WealthBand = person.WealthBand
			_, err = persons.Update(ctx, existing)
			return err
		}
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	_, err := persons.Create(ctx, person)
	return err
}

func readRows(req Request) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(req.FileName)) {
	case ".csv":
		return readCSV(req.Data)
	case ".xlsx":
		return readXLSX(req.Data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, req.FileName)
	}
}

func readCSV(data io.Reader) ([][]string, error) {
	buffered := bufio.NewReader(data)
	if peeked, err := buffered.Peek(len(byteOrderMark)); err == nil && bytes.Equal(peeked, byteOrderMark) {
		if _, err := buffered.Discard(len(byteOrderMark)); err != nil {
			return nil, fmt.Errorf("failed to skip byte order mark: %w", err)
		}
	}

	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

// columnMap resolves header labels to person fields.
type columnMap struct {
	firstName    int
	lastName     int
	email        int
	phone        int
	organization int
	wealthBand   int
}

func mapColumns(header []string) (columnMap, error) {
	columns := columnMap{firstName: -1, lastName: -1, email: -1, phone: -1, organization: -1, wealthBand: -1}
	for i, label := range header {
		switch normalizeHeader(label) {
		case "firstname":
			columns.firstName = i
		case "lastname":
			columns.lastName = i
		case "email", "emailaddress":
			columns.email = i
		case "phone", "phonenumber":
			columns.phone = i
		case "organization", "org":
			columns.organization = i
		case "wealthband":
			columns.wealthBand = i
		}
	}
	if columns.firstName < 0 || columns.lastName < 0 {
		return columnMap{}, fmt.Errorf("file must contain first name and last name columns")
	}
	return columns, nil
}

func normalizeHeader(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	label = strings.ReplaceAll(label, " ", "")
	label = strings.ReplaceAll(label, "_", "")
	return label
}

func (c columnMap) person(row []string) (domain.Person, error) {
	firstName := cellAt(row, c.firstName)
	lastName := cellAt(row, c.lastName)
	if firstName == "" || lastName == "" {
		return domain.Person{}, fmt.Errorf("first name and last name are required")
	}

	person := domain.NewPerson(firstName, lastName)
	person.Email = optionalCell(row, c.email)
	person.Phone = optionalCell(row, c.phone)
	person.Organization = optionalCell(row, c.organization)
	person.WealthBand = optionalCell(row, c.wealthBand)
	return person, nil
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func optionalCell(row []string, index int) *string {
	value := cellAt(row, index)
	if value == "" {
		return nil
	}
	return &value
}
