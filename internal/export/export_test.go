package export

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/roach88/rollcall/internal/model"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func hours(h float64) *float64 { return &h }

func sampleView() model.DailyView {
	ana := model.Teacher{ID: "t1", Name: "Ana Lima", EmployeeID: "E1", Department: "Math", IsActive: true}
	ben := model.Teacher{ID: "t2", Name: "Ben Okafor", EmployeeID: "E2", Department: "Science", IsActive: true}
	cho := model.Teacher{ID: "t3", Name: "Cho, Park", EmployeeID: "E3", Department: "Art", IsActive: true}

	return model.DailyView{
		Date: "2024-01-10",
		Entries: []model.DailyEntry{
			{
				Teacher: ana,
				Status:  model.StatusPresent,
				Record: &model.AttendanceRecord{
					ID: "t1-1", TeacherID: "t1", TeacherName: "Ana Lima", Date: "2024-01-10",
					CheckIn: "08:00", CheckOut: "15:30", Status: model.StatusPresent, TotalHours: hours(7.5),
				},
			},
			{
				Teacher: ben,
				Status:  model.StatusPartial,
				Record: &model.AttendanceRecord{
					ID: "t2-1", TeacherID: "t2", TeacherName: "Ben Okafor", Date: "2024-01-10",
					CheckIn: "09:00", Status: model.StatusPartial,
				},
			},
			{Teacher: cho, Status: model.StatusAbsent},
		},
		Present: 1,
		Partial: 1,
		Absent:  1,
	}
}

func sampleRecords() []model.AttendanceRecord {
	return []model.AttendanceRecord{
		{
			ID: "t1-2", TeacherID: "t1", TeacherName: "Ana Lima", Date: "2024-01-11",
			CheckIn: "09:00", Status: model.StatusPartial,
		},
		{
			ID: "t1-1", TeacherID: "t1", TeacherName: "Ana Lima", Date: "2024-01-10",
			CheckIn: "08:00", CheckOut: "15:30", Status: model.StatusPresent, TotalHours: hours(7.5),
		},
	}
}

func TestWriteDailyCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyCSV(&buf, sampleView()))
	newGoldie(t).Assert(t, "daily", buf.Bytes())
}

func TestWriteDailyCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyCSV(&buf, model.DailyView{Date: "2024-01-10"}))
	assert.Equal(t, "Teacher Name,Employee ID,Department,Check In,Check Out,Status,Total Hours\n", buf.String())
}

func TestWriteRecordsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecordsCSV(&buf, sampleRecords()))
	newGoldie(t).Assert(t, "records", buf.Bytes())
}

func TestDailyRows_ZeroHoursAreFormatted(t *testing.T) {
	view := model.DailyView{Entries: []model.DailyEntry{{
		Teacher: model.Teacher{Name: "Ana Lima"},
		Status:  model.StatusPresent,
		Record:  &model.AttendanceRecord{CheckIn: "08:00", CheckOut: "08:00", Status: model.StatusPresent, TotalHours: hours(0)},
	}}}

	rows := DailyRows(view)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.00", rows[0][6])
}

func TestDailyFilename(t *testing.T) {
	assert.Equal(t, "daily-attendance-2024-01-10.csv", DailyFilename("2024-01-10", "csv"))
	assert.Equal(t, "daily-attendance-2024-01-10.xlsx", DailyFilename("2024-01-10", "xlsx"))
}

func TestWriteDailyXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDailyXLSX(&buf, sampleView()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, DailySheet, f.GetSheetName(0))

	rows, err := f.GetRows(DailySheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, DailyHeader, rows[0])
	assert.Equal(t, []string{"Ana Lima", "E1", "Math", "08:00", "15:30", "present", "7.50"}, rows[1])
	assert.Equal(t, []string{"Cho, Park", "E3", "Art", NotRecorded, NotRecorded, "Absent", "0"}, rows[3])
	assert.Empty(t, rows[4])
	assert.Equal(t, []string{"Date", "2024-01-10", "Present", "1", "Checked In", "1", "Absent", "1"}, rows[5])
}
