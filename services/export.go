package services

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// exportRow is one line of the flattened weekly agenda
type exportRow struct {
	Date      string
	Start     string
	End       string
	Kind      string
	Title     string
	Status    string
	Cancelled bool
}

func collectWeekRows(db *gorm.DB, professionalID string, weekStart time.Time) ([]exportRow, error) {
	weekEnd := DayStart(weekStart).AddDate(0, 0, 7)

	schedule, err := GetWeekSchedule(db, professionalID)
	if err != nil {
		return nil, err
	}
	appointments, err := ListAppointments(db, professionalID, DayStart(weekStart), weekEnd, true)
	if err != nil {
		return nil, err
	}
	blocks, err := ListBlocks(db, professionalID, DayStart(weekStart), weekEnd)
	if err != nil {
		return nil, err
	}

	days := ComposeWeekTimeline(weekStart, schedule, appointments, blocks, TimelineOptions{})

	var rows []exportRow
	for _, day := range days {
		for _, entry := range day.Entries {
			status := entry.Status
			if entry.Cancelled {
				status = status + " (cancelled)"
			}
			rows = append(rows, exportRow{
				Date:      day.Date.Format("Mon 02 Jan"),
				Start:     entry.StartAt.Format("15:04"),
				End:       entry.EndAt.Format("15:04"),
				Kind:      entry.Kind,
				Title:     entry.Title,
				Status:    status,
				Cancelled: entry.Cancelled,
			})
		}
	}
	return rows, nil
}

// BuildWeekAgendaXLSX generates a spreadsheet of one professional's agenda
// for the 7 days starting at weekStart
func BuildWeekAgendaXLSX(db *gorm.DB, professionalID string, weekStart time.Time) (*bytes.Buffer, error) {
	rows, err := collectWeekRows(db, professionalID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to collect agenda entries: %w", err)
	}

	professionalName := DisplayName(db, professionalID, UnknownProfessionalLabel)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Agenda"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Agenda - %s", professionalName))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Week of %s", DayStart(weekStart).Format("January 2, 2006")))
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headers := []string{"Date", "Start", "End", "Type", "Title", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{row.Date, row.Start, row.End, row.Kind, row.Title, row.Status}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+5)
			f.SetCellValue(sheet, cell, value)
		}
	}

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "E", "E", 40)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return buf, nil
}

var agendaHTMLTemplate = template.Must(template.New("agenda").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; }
h1 { font-size: 16px; margin-bottom: 2px; }
h2 { font-size: 12px; color: #555; margin-top: 0; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 3px 6px; text-align: left; }
th { background: #f0f0f0; }
tr.cancelled td { color: #999; text-decoration: line-through; }
</style>
</head>
<body>
<h1>Agenda - {{.ProfessionalName}}</h1>
<h2>Week of {{.WeekLabel}}</h2>
<table>
<tr><th>Date</th><th>Start</th><th>End</th><th>Type</th><th>Title</th><th>Status</th></tr>
{{range .Rows}}<tr{{if .Cancelled}} class="cancelled"{{end}}><td>{{.Date}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Kind}}</td><td>{{.Title}}</td><td>{{.Status}}</td></tr>
{{end}}</table>
</body>
</html>`))

// BuildWeekAgendaHTML renders the printable weekly agenda used for PDF export
func BuildWeekAgendaHTML(db *gorm.DB, professionalID string, weekStart time.Time) (string, error) {
	rows, err := collectWeekRows(db, professionalID, weekStart)
	if err != nil {
		return "", fmt.Errorf("failed to collect agenda entries: %w", err)
	}

	data := struct {
		ProfessionalName string
		WeekLabel        string
		Rows             []exportRow
	}{
		ProfessionalName: DisplayName(db, professionalID, UnknownProfessionalLabel),
		WeekLabel:        DayStart(weekStart).Format("January 2, 2006"),
		Rows:             rows,
	}

	var buf bytes.Buffer
	if err := agendaHTMLTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render agenda template: %w", err)
	}
	return buf.String(), nil
}

// BuildWeekAgendaPDF renders the printable weekly agenda to PDF
func BuildWeekAgendaPDF(db *gorm.DB, professionalID string, weekStart time.Time) ([]byte, error) {
	html, err := BuildWeekAgendaHTML(db, professionalID, weekStart)
	if err != nil {
		return nil, err
	}
	return GeneratePDF(html, AgendaPDFOptions())
}
