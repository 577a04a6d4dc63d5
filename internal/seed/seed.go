package seed

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/utils"
)

// SampleCatalog 返回一个小型中学的示例目录：6 位教师各教一门课，每门课每周 12 次，4 间教室，每周 5 天每天 8 节
func SampleCatalog() *domain.Catalog {
	return &domain.Catalog{
		Name:  "示例目录",
		Days:  5,
		Slots: 8,
		Teachers: []domain.Teacher{
			{ID: 0, Name: "Anna Matematyczna", Code: "AM", CourseIDs: []int64{0}},
			{ID: 1, Name: "Aniela Anielska", Code: "AA", CourseIDs: []int64{1}},
			{ID: 2, Name: "Krzysztof Fizyczny", Code: "KF", CourseIDs: []int64{2}},
			{ID: 3, Name: "Adam Geograficzny", Code: "AG", CourseIDs: []int64{3}},
			{ID: 4, Name: "Michal Histeryk", Code: "MH", CourseIDs: []int64{4}},
			{ID: 5, Name: "Daniel Chemiczny", Code: "DC", CourseIDs: []int64{5}},
		},
		Courses: []domain.Course{
			{ID: 0, Name: "Matematyka", TimesPerWeek: 12},
			{ID: 1, Name: "Angielski", TimesPerWeek: 12},
			{ID: 2, Name: "Fizyka", TimesPerWeek: 12},
			{ID: 3, Name: "Geografia", TimesPerWeek: 12},
			{ID: 4, Name: "Historia", TimesPerWeek: 12},
			{ID: 5, Name: "Chemia", TimesPerWeek: 12},
		},
		Classrooms: []domain.Classroom{
			{ID: 0, Name: "Sala 1"},
			{ID: 1, Name: "Sala 2"},
			{ID: 2, Name: "Sala 3"},
			{ID: 3, Name: "Sala 4"},
		},
	}
}

// LoadCatalog 从 JSON 文件读取目录，并检查目录是否合法
func LoadCatalog(path string) (*domain.Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	catalog := &domain.Catalog{}
	if err := json.NewDecoder(file).Decode(catalog); err != nil {
		return nil, fmt.Errorf("解析目录文件 %s 失败: %w", path, err)
	}

	if err := utils.ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	return catalog, nil
}

func SeedSampleCatalog(r *repository.Repository) {
	catalog := SampleCatalog()
	if err := r.CreateCatalog(catalog); err != nil {
		slog.Error("插入示例目录失败", "error", err)
		return
	}

	slog.Info("插入示例目录完成", "id", catalog.ID)
}
