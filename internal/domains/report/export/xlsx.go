package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"dbtrain-backend/internal/domains/report/model"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	summarySheet = "Summary"
)

// sheet is one tabular section of the workbook
type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// Workbook renders the report as an xlsx file: a summary sheet for the scalar
// answers and one sheet per list answer
func Workbook(r *model.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, s := range sheets(r) {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Bytes renders the workbook into memory
func Bytes(r *model.Report) ([]byte, error) {
	f, err := Workbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func sheets(r *model.Report) []sheet {
	summary := sheet{
		name:    summarySheet,
		headers: []string{"Answer", "Question", "Value"},
		rows: [][]interface{}{
			{"answer1", "Highest self esteem", strings.Join(r.Answer1, ", ")},
			{"answer4", "Female authors", r.Answer4},
			{"answer5", "Agreed with rules", ratioCell(r.Answer5)},
			{"answer7", "Maximum age", intCell(r.Answer7)},
			{"answer8", "Authors with phone", r.Answer8},
			{"generated_at", "Generated at", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		},
	}

	prolific := sheet{name: "Most prolific", headers: []string{"Username", "Entries"}}
	for _, c := range r.Answer2 {
		prolific.rows = append(prolific.rows, []interface{}{c.Username, c.Entries})
	}

	tagged := sheet{name: "Tagged entries", headers: []string{"ID", "Author", "Text", "Tags", "Created at"}}
	for _, e := range r.Answer3 {
		names := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			names = append(names, t.String())
		}
		tagged.rows = append(tagged.rows, []interface{}{
			e.ID.String(), e.AuthorUsername, e.Text, strings.Join(names, " "), e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	profiles := sheet{name: "Profiles by stage", headers: []string{"Username", "Stage"}}
	for _, p := range r.Answer6 {
		profiles.rows = append(profiles.rows, []interface{}{p.Username, p.Stage})
	}

	young := sheet{name: "Young authors", headers: []string{"Username", "Age"}}
	for _, a := range r.Answer9 {
		young.rows = append(young.rows, []interface{}{a.Username, a.Age})
	}

	counts := sheet{name: "Entries per author", headers: []string{"Username", "Entries"}}
	for _, c := range r.Answer10 {
		counts.rows = append(counts.rows, []interface{}{c.Username, c.Entries})
	}

	return []sheet{summary, prolific, tagged, profiles, young, counts}
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	for col, header := range s.headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(s.name, cell, header); err != nil {
			return err
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func ratioCell(a model.RuleAgreement) interface{} {
	if !a.Defined || a.Ratio == nil {
		return "undefined"
	}
	return fmt.Sprintf("%d / %d = %s", a.Agreed, a.Total, a.Ratio.String())
}

func intCell(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
