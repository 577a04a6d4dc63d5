package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	scheduleSheet = "Schedule"
	statsSheet    = "Stats"
)

// WriteWorkbook 把所有课表的条目和每一代的统计写入同一个 xlsx 文件
func WriteWorkbook(path string, catalog *domain.Catalog, timetables []*domain.Timetable) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("无法创建目录 %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), scheduleSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(statsSheet); err != nil {
		return err
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	if err := writeScheduleSheet(fx, catalog, timetables, headerStyle); err != nil {
		return err
	}
	if err := writeStatsSheet(fx, timetables, headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func writeScheduleSheet(fx *excelize.File, catalog *domain.Catalog, timetables []*domain.Timetable, headerStyle int) error {
	header := []any{"算法", "冲突分数", "日期", "节次", "课程", "教师", "教室"}
	if err := fx.SetSheetRow(scheduleSheet, "A1", &header); err != nil {
		return err
	}
	if err := fx.SetCellStyle(scheduleSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, timetable := range timetables {
		if timetable == nil {
			continue
		}
		for _, entry := range timetable.Entries {
			values := []any{
				timetable.Variant,
				timetable.Fitness,
				dayLabel(entry.Day),
				slotLabel(entry.Slot),
				courseName(catalog, entry.CourseID),
				teacherName(catalog, entry.TeacherID),
				classroomName(catalog, entry.ClassroomID),
			}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := fx.SetSheetRow(scheduleSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	return fx.SetColWidth(scheduleSheet, "A", "G", 18)
}

func writeStatsSheet(fx *excelize.File, timetables []*domain.Timetable, headerStyle int) error {
	header := []any{"算法", "gen", "nevals", "avg", "std", "min", "max"}
	if err := fx.SetSheetRow(statsSheet, "A1", &header); err != nil {
		return err
	}
	if err := fx.SetCellStyle(statsSheet, "A1", "G1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, timetable := range timetables {
		if timetable == nil {
			continue
		}
		for _, stats := range timetable.Stats {
			values := []any{timetable.Variant, stats.Generation, stats.Evaluations, stats.Mean, stats.Std, stats.Min, stats.Max}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := fx.SetSheetRow(statsSheet, cell, &values); err != nil {
				return err
			}
			row++
		}
	}

	return fx.SetColWidth(statsSheet, "A", "A", 24)
}

func courseName(catalog *domain.Catalog, id int64) string {
	if course, ok := catalog.CourseByID(id); ok {
		return course.Name
	}
	return fmt.Sprintf("课程 %d", id)
}

func teacherName(catalog *domain.Catalog, id int64) string {
	if teacher, ok := catalog.TeacherByID(id); ok {
		return teacher.Name
	}
	return fmt.Sprintf("教师 %d", id)
}

func classroomName(catalog *domain.Catalog, id int64) string {
	if classroom, ok := catalog.ClassroomByID(id); ok {
		return classroom.Name
	}
	return fmt.Sprintf("教室 %d", id)
}
