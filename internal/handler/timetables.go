package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/monitoring"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/scheduler"
)

func latestTimetableKey(catalogID int64) string {
	return fmt.Sprintf("timetable_latest_%d", catalogID)
}

func generatingLockKey(catalogID int64) string {
	return fmt.Sprintf("timetable_generating_%d", catalogID)
}

type variantRequest struct {
	Name          string  `json:"name" validate:"required"`
	Algorithm     string  `json:"algorithm" validate:"required,oneof=simple mu-comma-lambda"`
	Mu            int32   `json:"mu" validate:"min=0"`
	Lambda        int32   `json:"lambda" validate:"min=0"`
	CrossoverRate float64 `json:"crossoverRate" validate:"min=0,max=1"`
	MutationRate  float64 `json:"mutationRate" validate:"min=0,max=1"`
}

// generateRequest 中没有填写的字段使用配置中的默认值
type generateRequest struct {
	PopulationSize *int32 `json:"populationSize" validate:"omitempty,min=0"`
	MaxGenerations *int32 `json:"maxGenerations" validate:"omitempty,min=0"`
	HallOfFameSize *int32 `json:"hallOfFameSize" validate:"omitempty,min=1"`
	TournamentSize *int32 `json:"tournamentSize" validate:"omitempty,min=1"`
	Seed           *int64 `json:"seed"`
	Workers        *int32 `json:"workers" validate:"omitempty,min=0"`
	// 课程排多了是否也扣分
	SymmetricCoveragePenalty *bool            `json:"symmetricCoveragePenalty"`
	Variants                 []variantRequest `json:"variants" validate:"omitempty,dive"`
}

func buildParameters(cfg *config.SchedulerConfig, req *generateRequest) *scheduler.Parameters {
	parameters := scheduler.NewParametersFromConfig(cfg)

	if req.PopulationSize != nil {
		parameters.PopulationSize = *req.PopulationSize
	}
	if req.MaxGenerations != nil {
		parameters.MaxGenerations = *req.MaxGenerations
	}
	if req.HallOfFameSize != nil {
		parameters.HallOfFameSize = *req.HallOfFameSize
	}
	if req.TournamentSize != nil {
		parameters.TournamentSize = *req.TournamentSize
	}
	if req.Seed != nil {
		parameters.Seed = *req.Seed
	}
	if req.Workers != nil {
		parameters.Workers = *req.Workers
	}
	if req.SymmetricCoveragePenalty != nil {
		parameters.SymmetricCoveragePenalty = *req.SymmetricCoveragePenalty
	}

	if len(req.Variants) > 0 {
		parameters.Variants = make([]scheduler.Variant, 0, len(req.Variants))
		for _, v := range req.Variants {
			parameters.Variants = append(parameters.Variants, scheduler.Variant{
				Name:          v.Name,
				Algorithm:     scheduler.AlgorithmKind(v.Algorithm),
				Mu:            v.Mu,
				Lambda:        v.Lambda,
				CrossoverRate: v.CrossoverRate,
				MutationRate:  v.MutationRate,
			})
		}
	}

	return parameters
}

// runScheduler 在目录上运行所有算法变体，返回每个变体的最优课表（种群为空的变体没有课表）
func runScheduler(parameters *scheduler.Parameters, catalog *domain.Catalog, batchID string) ([]*domain.Timetable, error) {
	catalogLabel := strconv.FormatInt(catalog.ID, 10)

	s, err := scheduler.New(parameters, catalog,
		scheduler.WithLogger(slog.Default().With("catalog", catalog.ID, "batch", batchID)),
		scheduler.WithObserver(func(variant string, stats scheduler.GenerationStats) {
			monitoring.RecordGeneration(variant, stats.Evaluations, stats.Min)
		}),
	)
	if err != nil {
		return nil, err
	}

	results, err := s.Schedule()
	if err != nil {
		return nil, err
	}

	timetables := make([]*domain.Timetable, 0, len(results))
	for _, res := range results {
		timetable := res.Timetable(catalog.ID)
		if timetable == nil {
			continue
		}
		timetable.BatchID = batchID
		monitoring.RecordRun(catalogLabel, timetable.Variant, timetable.Fitness)
		timetables = append(timetables, timetable)
	}

	return timetables, nil
}

// bestTimetable 返回冲突分数最低的课表，分数相同时取靠前的
func bestTimetable(timetables []*domain.Timetable) *domain.Timetable {
	var best *domain.Timetable
	for _, timetable := range timetables {
		if best == nil || timetable.Fitness < best.Fitness {
			best = timetable
		}
	}
	return best
}

func (h *Handler) GenerateTimetables(w http.ResponseWriter, r *http.Request) {
	catalog := r.Context().Value(CatalogCtx).(*domain.Catalog)
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req generateRequest
	// 请求体可以为空，此时全部使用默认参数
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parameters := buildParameters(&h.config.Scheduler, &req)

	// 同一个目录同时只允许一次排课
	lockKey := generatingLockKey(catalog.ID)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	acquired, err := h.redisClient.SetNX(ctx, lockKey, myInfo.ID, time.Duration(h.config.Scheduler.GenerationLockTTL)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !acquired {
		h.errorResponse(w, r, "该目录正在排课中，请稍后再试")
		return
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
		defer cancel()
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			slog.Warn("无法释放排课锁", "catalog", catalog.ID, "error", err)
		}
	}()

	start := time.Now()
	batchID := uuid.NewString()
	timetables, err := runScheduler(parameters, catalog, batchID)
	monitoring.ObserveRunDuration(strconv.FormatInt(catalog.ID, 10), time.Since(start).Seconds())
	if err != nil {
		var cfgErr *scheduler.ConfigurationError
		switch {
		case errors.As(err, &cfgErr):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if len(timetables) == 0 {
		h.successResponse(w, r, "种群大小为 0，没有生成课表", timetables)
		return
	}

	for _, timetable := range timetables {
		if err := h.repository.InsertTimetable(timetable); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	best := bestTimetable(timetables)
	if err := h.cacheLatestTimetable(best); err != nil {
		slog.Warn("无法缓存最新课表", "catalog", catalog.ID, "error", err)
	}

	// 邮件只是通知，发送失败不影响排课结果
	summaries := make([]domain.TimetableVariantSummary, 0, len(timetables))
	for _, timetable := range timetables {
		summaries = append(summaries, domain.TimetableVariantSummary{
			Variant:   timetable.Variant,
			Fitness:   timetable.Fitness,
			GeneCount: timetable.GeneCount,
		})
	}
	if err := h.publishMail(domain.MailMessage{
		Type: domain.MailTypeTimetableGenerated,
		To:   myInfo.Email,
		Data: domain.TimetableGeneratedMailData{
			FullName:    myInfo.FullName,
			CatalogName: catalog.Name,
			Variants:    summaries,
		},
	}); err != nil {
		monitoring.RecordError("mail")
		slog.Error("无法发送排课完成邮件", "catalog", catalog.ID, "error", err)
	}

	h.successResponse(w, r, "排课成功", timetables)
}

func (h *Handler) cacheLatestTimetable(timetable *domain.Timetable) error {
	data, err := json.Marshal(timetable)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	return h.redisClient.Set(ctx, latestTimetableKey(timetable.CatalogID), data, 0).Err()
}

func (h *Handler) GetTimetables(w http.ResponseWriter, r *http.Request) {
	catalog := r.Context().Value(CatalogCtx).(*domain.Catalog)

	timetables, err := h.repository.GetTimetablesByCatalogID(catalog.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取课表列表成功", timetables)
}

// GetLatestTimetable 优先读 redis 中的缓存，缓存不存在时回退到数据库并重新写入缓存
func (h *Handler) GetLatestTimetable(w http.ResponseWriter, r *http.Request) {
	catalog := r.Context().Value(CatalogCtx).(*domain.Catalog)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, latestTimetableKey(catalog.ID)).Bytes()
	switch {
	case err == nil:
		var timetable domain.Timetable
		if err := json.Unmarshal(data, &timetable); err == nil {
			h.successResponse(w, r, "获取最新课表成功", &timetable)
			return
		}
		slog.Warn("课表缓存已损坏", "catalog", catalog.ID)
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("无法读取课表缓存", "catalog", catalog.ID, "error", err)
	}

	timetable, err := h.repository.GetBestLatestTimetable(catalog.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.successResponse(w, r, "该目录还没有课表", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.cacheLatestTimetable(timetable); err != nil {
		slog.Warn("无法缓存最新课表", "catalog", catalog.ID, "error", err)
	}

	h.successResponse(w, r, "获取最新课表成功", timetable)
}
