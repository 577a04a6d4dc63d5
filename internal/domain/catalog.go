package domain

import "time"

type Teacher struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	CourseIDs []int64 `json:"courseIDs"` // 有资格讲授的课程
}

type Course struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TimesPerWeek int32  `json:"timesPerWeek"` // 每周需要上课的次数
}

type Classroom struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog 是排课的静态输入：教师、课程、教室以及每周的网格大小（天数 × 节次）
type Catalog struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Days       int32       `json:"days"`
	Slots      int32       `json:"slots"`
	Teachers   []Teacher   `json:"teachers"`
	Courses    []Course    `json:"courses"`
	Classrooms []Classroom `json:"classrooms"`
	CreatedAt  time.Time   `json:"createdAt"`
	Version    int32       `json:"-"`
}

// TotalOccurrences 返回所有课程每周上课次数之和，即一个个体的基因数量
func (c *Catalog) TotalOccurrences() int {
	total := 0
	for _, course := range c.Courses {
		total += int(course.TimesPerWeek)
	}
	return total
}

func (c *Catalog) TeacherByID(id int64) (*Teacher, bool) {
	for i := range c.Teachers {
		if c.Teachers[i].ID == id {
			return &c.Teachers[i], true
		}
	}
	return nil, false
}

func (c *Catalog) CourseByID(id int64) (*Course, bool) {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			return &c.Courses[i], true
		}
	}
	return nil, false
}

func (c *Catalog) ClassroomByID(id int64) (*Classroom, bool) {
	for i := range c.Classrooms {
		if c.Classrooms[i].ID == id {
			return &c.Classrooms[i], true
		}
	}
	return nil, false
}
