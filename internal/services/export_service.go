package services

import (
	"fmt"

	"github.com/chasonjia/familytree/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService builds spreadsheet exports of the person directory.
type ExportService struct {
	personRepo *repositories.PersonRepository
}

func NewExportService(personRepo *repositories.PersonRepository) *ExportService {
	return &ExportService{personRepo: personRepo}
}

// BuildPeopleWorkbook writes the full person directory, ordered by first
// name, into a single-sheet workbook
func (s *ExportService) BuildPeopleWorkbook() (*excelize.File, error) {
	people, err := s.personRepo.GetAll()
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	header := []interface{}{"ID", "Name", "First Name", "Middle Name", "Last Name", "Birth Date", "Birth Place", "Role"}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, person := range people {
		row := []interface{}{
			person.ID,
			person.DisplayName(),
			person.FirstName,
			deref(person.MiddleName),
			deref(person.LastName),
			person.BirthDate,
			deref(person.BirthPlace),
			person.Role,
		}

		cell := fmt.Sprintf("A%d", i+2)
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return file, nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
