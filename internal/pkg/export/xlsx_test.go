package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceRegister(t *testing.T) {
	rows := []RegisterRow{
		{EmployeeID: "E1", Name: "Ayu", CheckIn: "2025-06-10T09:00:00+07:00", Status: "PRESENT"},
		{EmployeeID: "E2", Name: "Budi", Status: "ABSENT"},
	}

	content, err := AttendanceRegister("2025-06-10", rows)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	date, err := f.GetCellValue("Attendance", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", date)

	header, err := f.GetCellValue("Attendance", "G4")
	require.NoError(t, err)
	assert.Equal(t, "Status", header)

	name, err := f.GetCellValue("Attendance", "B6")
	require.NoError(t, err)
	assert.Equal(t, "Budi", name)

	status, err := f.GetCellValue("Attendance", "G6")
	require.NoError(t, err)
	assert.Equal(t, "ABSENT", status)

	checkedIn, err := f.GetCellValue("Attendance", "B8")
	require.NoError(t, err)
	assert.Equal(t, "1", checkedIn)
}
