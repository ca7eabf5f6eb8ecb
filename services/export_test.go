package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"campusshield/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Complaint {
	return []models.Complaint{
		{
			TicketID:     "CSHLD-0A1B2C",
			Category:     models.CategoryFacultyMisconduct,
			Status:       "In Review",
			Description:  "grading, \"unfair\"",
			ContactEmail: "me@campus.edu",
			FileURL:      "https://files/x.pdf",
			AdminNotes:   "met HOD",
			Timestamp:    time.Date(2024, 3, 5, 18, 45, 10, 0, time.UTC),
		},
		{
			LegacyTicketID: "CSHLD-FFFFFF",
			Category:       models.CategoryOthers,
			Status:         models.StatusPending,
			Description:    "noise",
			Timestamp:      time.Date(2024, 3, 6, 1, 0, 0, 0, time.UTC),
		},
	}
}

func TestExportRow(t *testing.T) {
	cs := exportFixture()

	assert.Equal(t, []string{
		"CSHLD-0A1B2C", "Faculty Misconduct", "In Review", "grading, \"unfair\"",
		"me@campus.edu", "", "2024-03-05", "18:45:10", "https://files/x.pdf", "met HOD",
	}, ExportRow(&cs[0], nil))

	row := ExportRow(&cs[1], nil)
	assert.Equal(t, "CSHLD-FFFFFF", row[0])
	assert.Equal(t, "Not Available", row[8])
	assert.Equal(t, "Not Available", row[9])
}

func TestExportRowUsesLocation(t *testing.T) {
	cs := exportFixture()
	ist := time.FixedZone("IST", 5*3600+1800)
	row := ExportRow(&cs[0], ist)
	assert.Equal(t, "2024-03-06", row[6])
	assert.Equal(t, "00:15:10", row[7])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportFixture(), time.UTC))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ExportColumns, records[0])
	assert.Equal(t, "grading, \"unfair\"", records[1][3])
	assert.Equal(t, "Pending", records[2][2])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportFixture(), time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheet}, f.GetSheetList())
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ExportColumns, rows[0])
	assert.Equal(t, "CSHLD-0A1B2C", rows[1][0])
	assert.Equal(t, "Not Available", rows[2][9])
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
