package utils

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

// ValidateCatalog 检查目录能否用于排课
// 网格大小和教室数量必须为正，每门课程至少有一位有资格的教师，每周次数不能为负
func ValidateCatalog(catalog *domain.Catalog) error {
	if catalog == nil {
		return errors.New("目录不能为空")
	}
	if catalog.Days <= 0 {
		return fmt.Errorf("每周天数必须大于 0（当前为 %d）", catalog.Days)
	}
	if catalog.Slots <= 0 {
		return fmt.Errorf("每天节次数必须大于 0（当前为 %d）", catalog.Slots)
	}
	if len(catalog.Classrooms) == 0 {
		return errors.New("至少需要一间教室")
	}

	courseIDs := make(map[int64]bool)
	for _, course := range catalog.Courses {
		if courseIDs[course.ID] {
			return fmt.Errorf("课程 %d 重复", course.ID)
		}
		courseIDs[course.ID] = true

		if course.TimesPerWeek < 0 {
			return fmt.Errorf("课程 %d 的每周次数不能为负数（当前为 %d）", course.ID, course.TimesPerWeek)
		}
	}

	teacherIDs := make(map[int64]bool)
	qualifiedCnt := make(map[int64]int)
	for _, teacher := range catalog.Teachers {
		if teacherIDs[teacher.ID] {
			return fmt.Errorf("教师 %d 重复", teacher.ID)
		}
		teacherIDs[teacher.ID] = true

		for _, courseID := range teacher.CourseIDs {
			if !courseIDs[courseID] {
				return fmt.Errorf("教师 %d 可讲授的课程 %d 不存在于目录中", teacher.ID, courseID)
			}
			qualifiedCnt[courseID]++
		}
	}

	classroomIDs := make(map[int64]bool)
	for _, classroom := range catalog.Classrooms {
		if classroomIDs[classroom.ID] {
			return fmt.Errorf("教室 %d 重复", classroom.ID)
		}
		classroomIDs[classroom.ID] = true
	}

	for _, course := range catalog.Courses {
		if qualifiedCnt[course.ID] == 0 {
			return fmt.Errorf("课程 %d 没有任何有资格的教师", course.ID)
		}
	}

	return nil
}

// ValidateTimetableWithCatalog 检查课表的形状是否符合目录：
// 条目数等于每周总次数，每个条目的教师都能讲授该课程，日期、节次、教室都在目录范围内
func ValidateTimetableWithCatalog(timetable *domain.Timetable, catalog *domain.Catalog) error {
	if timetable == nil {
		return errors.New("课表不能为空")
	}

	if len(timetable.Entries) != catalog.TotalOccurrences() {
		return fmt.Errorf("课表中的条目数量 %d 和目录要求的上课次数 %d 不匹配", len(timetable.Entries), catalog.TotalOccurrences())
	}

	for i, entry := range timetable.Entries {
		if entry.Day < 0 || entry.Day >= catalog.Days {
			return fmt.Errorf("第 %d 项的日期 %d 超出范围", i+1, entry.Day)
		}
		if entry.Slot < 0 || entry.Slot >= catalog.Slots {
			return fmt.Errorf("第 %d 项的节次 %d 超出范围", i+1, entry.Slot)
		}
		if _, ok := catalog.CourseByID(entry.CourseID); !ok {
			return fmt.Errorf("第 %d 项的课程 %d 不存在于目录中", i+1, entry.CourseID)
		}
		if _, ok := catalog.ClassroomByID(entry.ClassroomID); !ok {
			return fmt.Errorf("第 %d 项的教室 %d 不存在于目录中", i+1, entry.ClassroomID)
		}

		teacher, ok := catalog.TeacherByID(entry.TeacherID)
		if !ok {
			return fmt.Errorf("第 %d 项的教师 %d 不存在于目录中", i+1, entry.TeacherID)
		}
		if !slices.Contains(teacher.CourseIDs, entry.CourseID) {
			return fmt.Errorf("第 %d 项的教师 %d 没有资格讲授课程 %d", i+1, entry.TeacherID, entry.CourseID)
		}
	}

	return nil
}
