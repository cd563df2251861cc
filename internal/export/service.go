// Package export streams the donor base as a CSV download.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/fundrazor/fundrazor/internal/repository"
)

var csvHeader = []string{"first_name", "last_name", "email", "phone", "organization", "wealth_band"}

// Service writes donor exports.
type Service struct {
	persons repository.PersonRepository
}

// NewService creates an export service.
func NewService(persons repository.PersonRepository) *Service {
	return &Service{persons: persons}
}

// WriteCSV writes the entire person collection to w as CSV.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer) error {
	persons, err := s.persons.List(ctx)
	if err != nil {
		return fmt.Errorf("load persons: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, person := range persons {
		record := []string{
			person.FirstName,
			person.LastName,
			stringValue(person.Email),
			stringValue(person.Phone),
			stringValue(person.Organization),
			stringValue(person.WealthBand),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
