package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

// SummaryRow 是一个算法变体运行结束后在终端输出的一行
type SummaryRow struct {
	Variant      string
	BestFitness  int // 名人堂最优个体的冲突分数
	FinalFitness int // 最后一代种群中最优个体的冲突分数
	Conflicts    int // 对最后一代最优个体重新计算的冲突分数
	GeneCount    int
	Evaluations  int
}

// ClassroomGrid 把课表中某间教室的条目放到 slots × days 的网格中
// 同一格有多个条目时（即存在教室冲突）全部保留，用换行分隔
func ClassroomGrid(catalog *domain.Catalog, timetable *domain.Timetable, classroomID int64) [][]string {
	grid := make([][]string, catalog.Slots)
	for i := range grid {
		grid[i] = make([]string, catalog.Days)
	}

	for _, entry := range timetable.Entries {
		if entry.ClassroomID != classroomID {
			continue
		}
		if entry.Day < 0 || entry.Day >= catalog.Days || entry.Slot < 0 || entry.Slot >= catalog.Slots {
			continue
		}

		cell := cellText(catalog, entry)
		if grid[entry.Slot][entry.Day] != "" {
			grid[entry.Slot][entry.Day] += "\n" + cell
		} else {
			grid[entry.Slot][entry.Day] = cell
		}
	}

	return grid
}

func cellText(catalog *domain.Catalog, entry domain.TimetableEntry) string {
	return courseName(catalog, entry.CourseID) + " / " + teacherName(catalog, entry.TeacherID)
}

// RenderClassroomGrids 为每间教室输出一张课表
func RenderClassroomGrids(w io.Writer, catalog *domain.Catalog, timetable *domain.Timetable) error {
	for _, classroom := range catalog.Classrooms {
		grid := ClassroomGrid(catalog, timetable, classroom.ID)

		t := table.NewWriter()
		t.SetTitle(fmt.Sprintf("%s - %s", timetable.Variant, classroom.Name))
		t.SetStyle(table.StyleRounded)
		t.Style().Options.SeparateRows = true

		header := table.Row{""}
		for day := range catalog.Days {
			header = append(header, dayLabel(day))
		}
		t.AppendHeader(header)

		for slot, cells := range grid {
			row := table.Row{slotLabel(int32(slot))}
			for _, cell := range cells {
				row = append(row, cell)
			}
			t.AppendRow(row)
		}

		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	}

	return nil
}

func RenderSummary(w io.Writer, rows []SummaryRow) error {
	t := table.NewWriter()
	t.SetTitle("排课结果汇总")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"算法", "名人堂最优", "末代最优", "冲突分数", "上课次数", "评估次数"})

	for _, row := range rows {
		t.AppendRow(table.Row{row.Variant, row.BestFitness, row.FinalFitness, row.Conflicts, row.GeneCount, row.Evaluations})
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderStats 输出每一代的统计，只保留每隔 every 代的一行以及最后一代
func RenderStats(w io.Writer, timetable *domain.Timetable, every int) error {
	every = max(every, 1)

	t := table.NewWriter()
	t.SetTitle(timetable.Variant)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"gen", "nevals", "avg", "std", "min", "max"})

	for i, stats := range timetable.Stats {
		if i%every != 0 && i != len(timetable.Stats)-1 {
			continue
		}
		t.AppendRow(table.Row{
			stats.Generation,
			stats.Evaluations,
			fmt.Sprintf("%.2f", stats.Mean),
			fmt.Sprintf("%.2f", stats.Std),
			stats.Min,
			stats.Max,
		})
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
