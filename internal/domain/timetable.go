package domain

import "time"

type TimetableEntry struct {
	TeacherID   int64 `json:"teacherID"`
	Day         int32 `json:"day"`
	Slot        int32 `json:"slot"`
	CourseID    int64 `json:"courseID"`
	ClassroomID int64 `json:"classroomID"`
}

type GenerationStats struct {
	Generation  int     `json:"generation"`
	Evaluations int     `json:"evaluations"`
	Mean        float64 `json:"mean"`
	Std         float64 `json:"std"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
}

// Timetable 是某个算法变体在一次运行中找到的最优课表
type Timetable struct {
	ID        int64             `json:"id"`
	CatalogID int64             `json:"catalogID"`
	BatchID   string            `json:"batchID"` // 同一次排课请求生成的课表共享同一个批次
	Variant   string            `json:"variant"`
	Fitness   int               `json:"fitness"` // 冲突分数，0 表示没有检测到冲突
	GeneCount int               `json:"geneCount"`
	Entries   []TimetableEntry  `json:"entries"`
	Stats     []GenerationStats `json:"stats"`
	CreatedAt time.Time         `json:"createdAt"`
	Version   int32             `json:"-"`
}
