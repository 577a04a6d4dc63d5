package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

// smallCatalog: 2 天 × 2 节，教师 0 只能教课程 0，教师 1 能教课程 0 和 1
// 课程 0 每周 2 次，课程 1 每周 1 次
func smallCatalog() *domain.Catalog {
	return &domain.Catalog{
		ID:    7,
		Name:  "small",
		Days:  2,
		Slots: 2,
		Teachers: []domain.Teacher{
			{ID: 0, Name: "T0", CourseIDs: []int64{0}},
			{ID: 1, Name: "T1", CourseIDs: []int64{0, 1}},
		},
		Courses: []domain.Course{
			{ID: 0, Name: "C0", TimesPerWeek: 2},
			{ID: 1, Name: "C1", TimesPerWeek: 1},
		},
		Classrooms: []domain.Classroom{
			{ID: 0, Name: "R0"},
			{ID: 1, Name: "R1"},
		},
	}
}

// singleCellCatalog 只有一个时间格、一位教师、一门每周一次的课程和一间教室
func singleCellCatalog() *domain.Catalog {
	return &domain.Catalog{
		Days:       1,
		Slots:      1,
		Teachers:   []domain.Teacher{{ID: 0, Name: "T0", CourseIDs: []int64{0}}},
		Courses:    []domain.Course{{ID: 0, Name: "C0", TimesPerWeek: 1}},
		Classrooms: []domain.Classroom{{ID: 0, Name: "R0"}},
	}
}

// crowdedCatalog 有两门课，但只有一个时间格和一间教室，任何课表都至少有一次教室冲突
func crowdedCatalog() *domain.Catalog {
	return &domain.Catalog{
		Days:  1,
		Slots: 1,
		Teachers: []domain.Teacher{
			{ID: 0, Name: "T0", CourseIDs: []int64{0}},
			{ID: 1, Name: "T1", CourseIDs: []int64{1}},
		},
		Courses: []domain.Course{
			{ID: 0, Name: "C0", TimesPerWeek: 1},
			{ID: 1, Name: "C1", TimesPerWeek: 1},
		},
		Classrooms: []domain.Classroom{{ID: 0, Name: "R0"}},
	}
}

func testParameters() *Parameters {
	p := DefaultParameters()
	p.PopulationSize = 20
	p.MaxGenerations = 5
	p.Seed = 42
	p.Variants = DefaultVariants(10, 20, 0.3, 0.2)
	return p
}

func newTestScheduler(t *testing.T, p *Parameters, catalog *domain.Catalog) *Scheduler {
	t.Helper()

	s, err := New(p, catalog)
	require.NoError(t, err)
	return s
}

func fitnessOf(t *testing.T, ind *Individual) int {
	t.Helper()

	fitness, valid := ind.Fitness()
	require.True(t, valid, "个体的适应度尚未计算")
	return fitness
}
