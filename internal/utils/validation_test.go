package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
)

func validCatalog() *domain.Catalog {
	return &domain.Catalog{
		Days:  2,
		Slots: 3,
		Teachers: []domain.Teacher{
			{ID: 0, Name: "王芳", CourseIDs: []int64{0}},
			{ID: 1, Name: "李强", CourseIDs: []int64{0, 1}},
		},
		Courses: []domain.Course{
			{ID: 0, Name: "高等数学", TimesPerWeek: 2},
			{ID: 1, Name: "大学物理", TimesPerWeek: 1},
		},
		Classrooms: []domain.Classroom{{ID: 0, Name: "教室 1"}},
	}
}

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, ValidateCatalog(validCatalog()))

	tests := []struct {
		name   string
		modify func(c *domain.Catalog)
	}{
		{"天数为 0", func(c *domain.Catalog) { c.Days = 0 }},
		{"节次为负", func(c *domain.Catalog) { c.Slots = -1 }},
		{"没有教室", func(c *domain.Catalog) { c.Classrooms = nil }},
		{"课程重复", func(c *domain.Catalog) { c.Courses[1].ID = 0 }},
		{"每周次数为负", func(c *domain.Catalog) { c.Courses[0].TimesPerWeek = -1 }},
		{"教师重复", func(c *domain.Catalog) { c.Teachers[1].ID = 0 }},
		{"教师引用不存在的课程", func(c *domain.Catalog) { c.Teachers[0].CourseIDs = []int64{0, 5} }},
		{"教室重复", func(c *domain.Catalog) {
			c.Classrooms = append(c.Classrooms, domain.Classroom{ID: 0, Name: "教室 2"})
		}},
		{"课程没有教师", func(c *domain.Catalog) { c.Teachers[1].CourseIDs = []int64{0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCatalog()
			tt.modify(c)
			assert.Error(t, ValidateCatalog(c))
		})
	}

	assert.Error(t, ValidateCatalog(nil))
}

func TestValidateCatalog_ZeroOccurrences(t *testing.T) {
	c := validCatalog()
	c.Courses[0].TimesPerWeek = 0
	c.Courses[1].TimesPerWeek = 0

	assert.NoError(t, ValidateCatalog(c))
	assert.Equal(t, 0, c.TotalOccurrences())
}

func validTimetable() *domain.Timetable {
	return &domain.Timetable{
		Entries: []domain.TimetableEntry{
			{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
			{TeacherID: 1, Day: 1, Slot: 2, CourseID: 0, ClassroomID: 0},
			{TeacherID: 1, Day: 0, Slot: 1, CourseID: 1, ClassroomID: 0},
		},
	}
}

func TestValidateTimetableWithCatalog(t *testing.T) {
	require.NoError(t, ValidateTimetableWithCatalog(validTimetable(), validCatalog()))

	tests := []struct {
		name   string
		modify func(tt *domain.Timetable)
	}{
		{"条目数量不对", func(tt *domain.Timetable) { tt.Entries = tt.Entries[:2] }},
		{"日期越界", func(tt *domain.Timetable) { tt.Entries[0].Day = 2 }},
		{"节次为负", func(tt *domain.Timetable) { tt.Entries[0].Slot = -1 }},
		{"未知课程", func(tt *domain.Timetable) { tt.Entries[0].CourseID = 9 }},
		{"未知教室", func(tt *domain.Timetable) { tt.Entries[0].ClassroomID = 9 }},
		{"未知教师", func(tt *domain.Timetable) { tt.Entries[0].TeacherID = 9 }},
		{"教师没有资格", func(tt *domain.Timetable) { tt.Entries[2].TeacherID = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timetable := validTimetable()
			tc.modify(timetable)
			assert.Error(t, ValidateTimetableWithCatalog(timetable, validCatalog()))
		})
	}

	assert.Error(t, ValidateTimetableWithCatalog(nil, validCatalog()))
}
