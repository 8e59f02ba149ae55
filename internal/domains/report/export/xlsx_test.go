package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	entryModel "dbtrain-backend/internal/domains/entry/model"
	"dbtrain-backend/internal/domains/report/model"
	tagModel "dbtrain-backend/internal/domains/tag/model"
)

func sampleReport() *model.Report {
	maxAge := 40
	return &model.Report{
		Answer1: []string{"anna", "boris"},
		Answer2: []model.AuthorEntryCount{{Username: "anna", Entries: 2}},
		Answer3: []entryModel.Entry{{
			ID:             uuid.New(),
			AuthorUsername: "anna",
			Text:           "film",
			Tags:           []tagModel.Tag{{Name: "Кино"}},
		}},
		Answer4:     2,
		Answer5:     model.AgreementRatio(1, 2),
		Answer6:     []model.ProfileStage{{Username: "anna", Stage: 3}},
		Answer7:     &maxAge,
		Answer8:     1,
		Answer9:     []model.AuthorAge{{Username: "anna", Age: 22}},
		Answer10:    []model.AuthorEntryCount{{Username: "anna", Entries: 2}, {Username: "vera"}},
		GeneratedAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestBytes(t *testing.T) {
	data, err := Bytes(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"Summary", "Most prolific", "Tagged entries", "Profiles by stage", "Young authors", "Entries per author",
	}, f.GetSheetList())

	value, err := f.GetCellValue("Summary", "C2")
	require.NoError(t, err)
	assert.Equal(t, "anna, boris", value)

	value, err = f.GetCellValue("Summary", "C4")
	require.NoError(t, err)
	assert.Equal(t, "1 / 2 = 0.5", value)

	value, err = f.GetCellValue("Tagged entries", "D2")
	require.NoError(t, err)
	assert.Equal(t, "#Кино", value)

	rows, err := f.GetRows("Entries per author")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestBytes_EmptyReport(t *testing.T) {
	data, err := Bytes(&model.Report{Answer5: model.AgreementRatio(0, 0)})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("Summary", "C4")
	require.NoError(t, err)
	assert.Equal(t, "undefined", value)

	value, err = f.GetCellValue("Summary", "C5")
	require.NoError(t, err)
	assert.Empty(t, value)
}
