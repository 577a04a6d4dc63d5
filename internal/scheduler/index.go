package scheduler

import "github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"

// catalogIndex 在创建 Scheduler 时构建一次，之后只读
type catalogIndex struct {
	days         int
	slots        int
	qualified    map[int64][]int64 // {courseID: [teacherID1, teacherID2, ...]}
	teacherPos   map[int64]int     // teacherID -> 在目录中的下标
	classroomPos map[int64]int     // classroomID -> 在目录中的下标
	classroomIDs []int64
}

func newCatalogIndex(catalog *domain.Catalog) *catalogIndex {
	idx := &catalogIndex{
		days:         int(catalog.Days),
		slots:        int(catalog.Slots),
		qualified:    make(map[int64][]int64),
		teacherPos:   make(map[int64]int),
		classroomPos: make(map[int64]int),
		classroomIDs: make([]int64, 0, len(catalog.Classrooms)),
	}

	for i, teacher := range catalog.Teachers {
		idx.teacherPos[teacher.ID] = i
		for _, courseID := range teacher.CourseIDs {
			idx.qualified[courseID] = append(idx.qualified[courseID], teacher.ID)
		}
	}

	for i, classroom := range catalog.Classrooms {
		idx.classroomPos[classroom.ID] = i
		idx.classroomIDs = append(idx.classroomIDs, classroom.ID)
	}

	return idx
}

func (idx *catalogIndex) qualifiedTeachers(courseID int64) []int64 {
	return idx.qualified[courseID]
}

// cell 将 (day, slot) 映射为网格下标，超出范围时返回 false
func (idx *catalogIndex) cell(day, slot int32) (int, bool) {
	if day < 0 || int(day) >= idx.days || slot < 0 || int(slot) >= idx.slots {
		return 0, false
	}
	return int(day)*idx.slots + int(slot), true
}
