package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Days:  2,
		Slots: 2,
		Teachers: []domain.Teacher{
			{ID: 0, Name: "王芳", CourseIDs: []int64{0}},
			{ID: 1, Name: "李强", CourseIDs: []int64{1}},
		},
		Courses: []domain.Course{
			{ID: 0, Name: "高等数学", TimesPerWeek: 2},
			{ID: 1, Name: "大学物理", TimesPerWeek: 1},
		},
		Classrooms: []domain.Classroom{
			{ID: 0, Name: "教室 1"},
			{ID: 1, Name: "教室 2"},
		},
	}
}

func testTimetable() *domain.Timetable {
	return &domain.Timetable{
		Variant: "simple",
		Fitness: 10,
		Entries: []domain.TimetableEntry{
			{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
			{TeacherID: 0, Day: 1, Slot: 1, CourseID: 0, ClassroomID: 0},
			{TeacherID: 1, Day: 1, Slot: 1, CourseID: 1, ClassroomID: 0},
		},
		Stats: []domain.GenerationStats{
			{Generation: 0, Evaluations: 10, Mean: 30, Std: 5, Min: 20, Max: 40},
			{Generation: 1, Evaluations: 6, Mean: 22.5, Std: 4, Min: 10, Max: 30},
		},
	}
}

func TestClassroomGrid(t *testing.T) {
	grid := ClassroomGrid(testCatalog(), testTimetable(), 0)

	require.Len(t, grid, 2)
	require.Len(t, grid[0], 2)
	assert.Equal(t, "高等数学 / 王芳", grid[0][0])
	assert.Equal(t, "", grid[0][1])
	// 冲突的两个条目都保留
	assert.Equal(t, "高等数学 / 王芳\n大学物理 / 李强", grid[1][1])

	empty := ClassroomGrid(testCatalog(), testTimetable(), 1)
	for _, row := range empty {
		for _, cell := range row {
			assert.Empty(t, cell)
		}
	}
}

func TestRenderClassroomGrids(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderClassroomGrids(&buf, testCatalog(), testTimetable()))

	out := buf.String()
	assert.Contains(t, out, "simple - 教室 1")
	assert.Contains(t, out, "simple - 教室 2")
	assert.Contains(t, out, "周二")
	assert.Contains(t, out, "第 2 节")
	assert.Contains(t, out, "大学物理 / 李强")
}

func TestRenderSummaryAndStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, []SummaryRow{
		{Variant: "mu-comma-lambda-50-100", BestFitness: 0, FinalFitness: 10, Conflicts: 10, GeneCount: 72, Evaluations: 1234},
	}))
	assert.Contains(t, buf.String(), "mu-comma-lambda-50-100")
	assert.Contains(t, buf.String(), "1234")

	buf.Reset()
	require.NoError(t, RenderStats(&buf, testTimetable(), 10))
	assert.Contains(t, buf.String(), "22.50")
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "timetable.xlsx")
	require.NoError(t, WriteWorkbook(path, testCatalog(), []*domain.Timetable{testTimetable(), nil}))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	rows, err := fx.GetRows(scheduleSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"simple", "10", "周一", "第 1 节", "高等数学", "王芳", "教室 1"}, rows[1])

	rows, err = fx.GetRows(statsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "22.5", rows[2][3])
}

func TestPlotFitness(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness_simple.png")
	require.NoError(t, PlotFitness(testTimetable(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, PlotFitness(&domain.Timetable{Variant: "empty"}, path))
}
