package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"campusshield/models"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheet  = "Complaints"
	notAvailable = "Not Available"
)

var ExportColumns = []string{
	"Ticket ID",
	"Category",
	"Status",
	"Description",
	"Contact Email",
	"Contact Phone",
	"Date Submitted",
	"Time Submitted",
	"Image URL",
	"Admin Notes",
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// ExportRow renders a complaint as one export row, with dates in loc.
func ExportRow(c *models.Complaint, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	ts := c.Timestamp.In(loc)
	return []string{
		c.Ticket(),
		c.Category.Label(),
		c.Status.Label(),
		c.Description,
		c.ContactEmail,
		c.ContactPhone,
		ts.Format("2006-01-02"),
		ts.Format("15:04:05"),
		orNotAvailable(c.FileURL),
		orNotAvailable(c.AdminNotes),
	}
}

func WriteCSV(w io.Writer, complaints []models.Complaint, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for i := range complaints {
		if err := cw.Write(ExportRow(&complaints[i], loc)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var exportWidths = map[string]float64{
	"A": 16, "B": 20, "C": 12, "D": 60, "E": 28,
	"F": 18, "G": 14, "H": 14, "I": 50, "J": 40,
}

func WriteXLSX(w io.Writer, complaints []models.Complaint, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(ExportColumns))
	for i, col := range ExportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(ExportSheet, 1, 1, style)
	}

	for i := range complaints {
		row := ExportRow(&complaints[i], loc)
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	for col, width := range exportWidths {
		if err := f.SetColWidth(ExportSheet, col, col, width); err != nil {
			return err
		}
	}
	return f.Write(w)
}
