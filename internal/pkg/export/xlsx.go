package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterRow is one line of a daily attendance register.
type RegisterRow struct {
	EmployeeID string
	Name       string
	JobTitle   string
	Department string
	CheckIn    string
	CheckOut   string
	Status     string
}

var registerHeaders = []string{"Employee ID", "Name", "Job Title", "Department", "Check In", "Check Out", "Status"}

// AttendanceRegister renders the rows of one day as a single-sheet workbook.
func AttendanceRegister(day string, rows []RegisterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "ATTENDANCE REGISTER")
	f.SetCellValue(sheetName, "A2", "Date:")
	f.SetCellValue(sheetName, "B2", day)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	const headerRow = 4
	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheetName, cell, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(registerHeaders), headerRow)
	f.SetCellStyle(sheetName, "A4", lastHeader, headerStyle)

	present, absent := 0, 0
	for i, row := range rows {
		r := headerRow + 1 + i
		values := []string{row.EmployeeID, row.Name, row.JobTitle, row.Department, row.CheckIn, row.CheckOut, row.Status}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			f.SetCellValue(sheetName, cell, v)
		}
		if row.CheckIn != "" {
			present++
		} else {
			absent++
		}
	}

	summaryRow := headerRow + len(rows) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Checked in:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), present)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow+1), "Not checked in:")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow+1), absent)

	f.SetColWidth(sheetName, "A", "A", 16)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "D", 22)
	f.SetColWidth(sheetName, "E", "F", 24)
	f.SetColWidth(sheetName, "G", "G", 12)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
