package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/fundrazor/fundrazor/internal/domain"
	"github.com/fundrazor/fundrazor/internal/repository"
)

// memoryPersons is an in-memory PersonRepository keyed by lowercased email.
type memoryPersons struct {
	byEmail map[string]domain.Person
	created int
	updated int
}

func newMemoryPersons() *memoryPersons {
	return &memoryPersons{byEmail: map[string]domain.Person{}}
}

func (m *memoryPersons) List(ctx context.Context) ([]domain.Person, error) {
	var all []domain.Person
	for _, p := range m.byEmail {
		all = append(all, p)
	}
	return all, nil
}

func (m *memoryPersons) GetByEmail(ctx context.Context, email string) (domain.Person, error) {
	p, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Person{}, domain.NewNotFound("person", email)
	}
	return p, nil
}

func (m *memoryPersons) Create(ctx context.Context, p domain.Person) (domain.Person, error) {
	m.created++
	if p.HasEmail() {
		m.byEmail[strings.ToLower(*p.Email)] = p
	}
	return p, nil
}

func (m *memoryPersons) Update(ctx context.Context, p domain.Person) (domain.Person, error) {
	m.updated++
	if p.HasEmail() {
		m.byEmail[strings.ToLower(*p.Email)] = p
	}
	return p, nil
}

func (m *memoryPersons) CountDuplicateNameGroups(ctx context.Context) (int, error) {
	return 0, nil
}

func TestImport_CSVWithByteOrderMark(t *testing.T) {
	persons := newMemoryPersons()
	svc := NewService(persons)

	csv := "\xEF\xBB\xBFfirst_name,last_name,email,phone,organization,wealth_band\n" +
		"Grace,Hopper,grace@example.org,555-0101,Navy,high\n" +
		"Jean,Bartik,jean@example.org,,,\n"

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalRows != 2 || summary.Imported != 2 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if persons.created != 2 {
		t.Fatalf("expected 2 created persons, got %d", persons.created)
	}

	stored, err := persons.GetByEmail(context.Background(), "grace@example.org")
	if err != nil {
		t.Fatalf("expected grace to be stored: %v", err)
	}
	if stored.WealthBand == nil || *stored.WealthBand != "high" {
		t.Fatalf("expected wealth band high, got %v", stored.WealthBand)
	}
}

func TestImport_UpsertsByEmail(t *testing.T) {
	persons := newMemoryPersons()
	existing := domain.NewPerson("G", "Hopper")
	email := "grace@example.org"
	existing.Email = &email
	persons.byEmail[email] = existing

	svc := NewService(persons)
	csv := "first_name,last_name,email,phone\nGrace,Hopper,GRACE@example.org,555-0101\n"

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Imported != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if persons.updated != 1 || persons.created != 0 {
		t.Fatalf("expected an update, not a create: updated=%d created=%d", persons.updated, persons.created)
	}

	stored, err := persons.GetByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("expected grace to still be stored: %v", err)
	}
	if stored.FirstName != "Grace" {
		t.Fatalf("expected first name refreshed to Grace, got %q", stored.FirstName)
	}
	if stored.Phone == nil || *stored.Phone != "555-0101" {
		t.Fatalf("expected phone refreshed, got %v", stored.Phone)
	}
}

func TestImport_ReportsBadRowsWithoutAborting(t *testing.T) {
	persons := newMemoryPersons()
	svc := NewService(persons)

	csv := "first_name,last_name,email\n" +
		"Grace,Hopper,grace@example.org\n" +
		",,missing-names@example.org\n" +
		"Jean,Bartik,jean@example.org\n"

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalRows != 3 || summary.Imported != 2 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected one row error, got %+v", summary.Errors)
	}
	if summary.Errors[0].Row != 3 {
		t.Fatalf("expected error on row 3, got row %d", summary.Errors[0].Row)
	}
}

func TestImport_RequiresNameColumns(t *testing.T) {
	svc := NewService(newMemoryPersons())

	_, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader("email\ngrace@example.org\n"),
	})
	if err == nil {
		t.Fatalf("expected error for missing name columns")
	}
}

func TestImport_UnsupportedFormat(t *testing.T) {
	svc := NewService(newMemoryPersons())

	_, err := svc.Import(context.Background(), Request{
		FileName: "donors.pdf",
		Data:     strings.NewReader("irrelevant"),
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestImport_HeaderAliases(t *testing.T) {
	persons := newMemoryPersons()
	svc := NewService(persons)

	csv := "First Name,Last Name,Email Address,Phone Number,Org,Wealth Band\n" +
		"Grace,Hopper,grace@example.org,555-0101,Navy,high\n"

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Imported != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestImport_XLSXWorkbook(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	rows := [][]interface{}{
		{"first_name", "last_name", "email", "phone", "organization", "wealth_band"},
		{"Grace", "Hopper", "grace@example.org", "555-0101", "Navy", "high"},
		{"Jean", "Bartik", "jean@example.org", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := workbook.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	persons := newMemoryPersons()
	svc := NewService(persons)

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.xlsx",
		Data:     &buf,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalRows != 2 || summary.Imported != 2 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	stored, err := persons.GetByEmail(context.Background(), "grace@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Organization == nil || *stored.Organization != "Navy" {
		t.Fatalf("expected organization Navy, got %+v", stored.Organization)
	}
	if stored.WealthBand == nil || *stored.WealthBand != "high" {
		t.Fatalf("expected wealth band high, got %+v", stored.WealthBand)
	}
}

func TestImport_EachRowUpsertsInsideTxScope(t *testing.T) {
	persons := newMemoryPersons()
	svc := NewService(persons)

	var scopes int
	svc.runTx = func(ctx context.Context, fn func(repository.PersonRepository) error) error {
		scopes++
		return fn(persons)
	}

	csv := "first_name,last_name,email\n" +
		"Grace,Hopper,grace@example.org\n" +
		"Jean,Bartik,jean@example.org\n" +
		",,missing-name@example.org\n"

	summary, err := svc.Import(context.Background(), Request{
		FileName: "donors.csv",
		Data:     strings.NewReader(csv),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The malformed row never reaches the repository, so only the two valid
	// rows open a scope.
	if scopes != 2 {
		t.Fatalf("expected 2 upsert scopes, got %d", scopes)
	}
	if summary.Imported != 2 || summary.Skipped != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if persons.created != 2 {
		t.Fatalf("expected 2 created persons, got %d", persons.created)
	}
}
