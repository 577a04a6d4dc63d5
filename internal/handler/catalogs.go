package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/utils"
)

type teacherRequest struct {
	ID        int64   `json:"id" validate:"min=0"`
	Name      string  `json:"name" validate:"required"`
	Code      string  `json:"code"`
	CourseIDs []int64 `json:"courseIDs"`
}

type courseRequest struct {
	ID           int64  `json:"id" validate:"min=0"`
	Name         string `json:"name" validate:"required"`
	TimesPerWeek int32  `json:"timesPerWeek" validate:"min=0"`
}

type classroomRequest struct {
	ID   int64  `json:"id" validate:"min=0"`
	Name string `json:"name" validate:"required"`
}

type catalogRequest struct {
	Name       string             `json:"name" validate:"required,max=64"`
	Days       int32              `json:"days" validate:"required,min=1"`
	Slots      int32              `json:"slots" validate:"required,min=1"`
	Teachers   []teacherRequest   `json:"teachers" validate:"dive"`
	Courses    []courseRequest    `json:"courses" validate:"dive"`
	Classrooms []classroomRequest `json:"classrooms" validate:"required,min=1,dive"`
}

// toCatalog 转换为领域对象，没有填写教师代码时用姓名的拼音首字母生成
func (req *catalogRequest) toCatalog() *domain.Catalog {
	catalog := &domain.Catalog{
		Name:       req.Name,
		Days:       req.Days,
		Slots:      req.Slots,
		Teachers:   make([]domain.Teacher, 0, len(req.Teachers)),
		Courses:    make([]domain.Course, 0, len(req.Courses)),
		Classrooms: make([]domain.Classroom, 0, len(req.Classrooms)),
	}

	for _, t := range req.Teachers {
		code := t.Code
		if code == "" {
			code = utils.GenerateTeacherCode(t.Name)
		}
		courseIDs := t.CourseIDs
		if courseIDs == nil {
			courseIDs = make([]int64, 0)
		}
		catalog.Teachers = append(catalog.Teachers, domain.Teacher{ID: t.ID, Name: t.Name, Code: code, CourseIDs: courseIDs})
	}
	for _, c := range req.Courses {
		catalog.Courses = append(catalog.Courses, domain.Course{ID: c.ID, Name: c.Name, TimesPerWeek: c.TimesPerWeek})
	}
	for _, c := range req.Classrooms {
		catalog.Classrooms = append(catalog.Classrooms, domain.Classroom{ID: c.ID, Name: c.Name})
	}

	return catalog
}

func (h *Handler) CreateCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	catalog := req.toCatalog()
	if err := utils.ValidateCatalog(catalog); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateCatalog(catalog); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "catalogs_name_key":
				h.badRequest(w, r, errors.New("目录名称已存在"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "创建目录成功", catalog)
}

func (h *Handler) GetAllCatalogs(w http.ResponseWriter, r *http.Request) {
	catalogs, err := h.repository.GetAllCatalogs()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取目录列表成功", catalogs)
}

func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := r.Context().Value(CatalogCtx).(*domain.Catalog)
	h.successResponse(w, r, "获取目录成功", catalog)
}

func (h *Handler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := r.Context().Value(CatalogCtx).(*domain.Catalog)

	if err := h.repository.DeleteCatalog(catalog.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 课表随目录级联删除，缓存也要一起清掉
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, latestTimetableKey(catalog.ID)).Err(); err != nil {
		slog.Warn("无法删除课表缓存", "catalog", catalog.ID, "error", err)
	}

	h.successResponse(w, r, "删除目录成功", nil)
}
