package scheduler

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/utils"
)

// GenerationObserver 在每一代统计完成后被调用
type GenerationObserver func(variant string, stats GenerationStats)

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func WithObserver(observer GenerationObserver) Option {
	return func(s *Scheduler) {
		s.observer = observer
	}
}

type Scheduler struct {
	parameters *Parameters
	catalog    *domain.Catalog
	index      *catalogIndex
	geneCount  int
	logger     *slog.Logger
	observer   GenerationObserver
}

// RunResult 是一个算法变体运行结束后的结果
type RunResult struct {
	Variant     Variant
	Seed        int64
	Best        *Individual // 名人堂中的最优个体，种群为空时为 nil
	HallOfFame  []*Individual
	FinalBest   *Individual // 最后一代种群中的最优个体
	GeneCount   int
	Evaluations int
	Stats       []GenerationStats
}

func New(parameters *Parameters, catalog *domain.Catalog, opts ...Option) (*Scheduler, error) {
	if parameters == nil {
		parameters = DefaultParameters()
	}
	if err := parameters.Validate(); err != nil {
		return nil, &ConfigurationError{Kind: ErrInvalidParameters, Err: err}
	}
	// 目录不合法时编码器永远无法满足覆盖要求，必须在搜索开始之前拒绝
	if err := utils.ValidateCatalog(catalog); err != nil {
		return nil, &ConfigurationError{Kind: ErrInvalidCatalog, Err: err}
	}

	s := &Scheduler{
		parameters: parameters,
		catalog:    catalog,
		index:      newCatalogIndex(catalog),
		geneCount:  catalog.TotalOccurrences(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Schedule 依次运行所有算法变体，每个变体有独立的种群、名人堂和随机数生成器
func (s *Scheduler) Schedule() ([]*RunResult, error) {
	seed := s.parameters.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	results := make([]*RunResult, 0, len(s.parameters.Variants))
	for i, variant := range s.parameters.Variants {
		runSeed := seed + int64(i)
		res := s.Run(variant, rand.New(rand.NewSource(runSeed)))
		res.Seed = runSeed

		// 还需要检查一下结果是否满足目录的约束（理论上交叉和变异都不会破坏这些约束）
		if res.Best != nil {
			if err := utils.ValidateTimetableWithCatalog(res.Timetable(s.catalog.ID), s.catalog); err != nil {
				return nil, err
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// Run 用给定的随机数生成器运行一个算法变体，所有随机性都只来自 rng
func (s *Scheduler) Run(variant Variant, rng *rand.Rand) *RunResult {
	start := time.Now()
	result := &RunResult{
		Variant:   variant,
		GeneCount: s.geneCount,
	}
	hof := NewHallOfFame(int(s.parameters.HallOfFameSize))

	if s.parameters.PopulationSize == 0 {
		s.logger.Warn("种群大小为 0，跳过运行", "variant", variant.Name)
		return result
	}

	// 生成初始种群
	pop := make([]*Individual, s.parameters.PopulationSize)
	for i := range pop {
		pop[i] = s.randomInitIndividual(rng)
	}
	evaluations := s.evaluatePopulation(pop)
	hof.Update(pop)
	result.Evaluations += evaluations
	s.record(result, calcGenerationStats(0, evaluations, pop))

	// 迭代
	for gen := 1; gen <= int(s.parameters.MaxGenerations); gen++ {
		var offspring []*Individual

		switch variant.Algorithm {
		case AlgorithmMuCommaLambda:
			offspring = s.varOr(rng, pop, variant)
		default:
			offspring = s.varAnd(rng, s.selectByTournament(rng, pop, len(pop)), variant)
		}

		evaluations = s.evaluatePopulation(offspring)
		hof.Update(offspring)
		result.Evaluations += evaluations

		switch variant.Algorithm {
		case AlgorithmMuCommaLambda:
			// 下一代只从后代中选出
			pop = s.selectByTournament(rng, offspring, int(variant.Mu))
		default:
			pop = offspring
		}

		s.record(result, calcGenerationStats(gen, evaluations, pop))
	}

	result.Best = hof.Best()
	result.HallOfFame = hof.Items()
	result.FinalBest = bestOf(pop)

	s.logger.Info("算法变体运行完成",
		"variant", variant.Name,
		"generations", s.parameters.MaxGenerations,
		"best", result.Best.fitness,
		"evaluations", result.Evaluations,
		"duration", time.Since(start),
	)

	return result
}

func (s *Scheduler) record(result *RunResult, stats GenerationStats) {
	result.Stats = append(result.Stats, stats)
	s.logger.Debug("已完成一代",
		"variant", result.Variant.Name,
		"gen", stats.Generation,
		"nevals", stats.Evaluations,
		"mean", stats.Mean,
		"min", stats.Min,
		"max", stats.Max,
	)
	if s.observer != nil {
		s.observer(result.Variant.Name, stats)
	}
}

// Evaluate 重新计算个体的冲突分数，不修改个体
func (s *Scheduler) Evaluate(ind *Individual) int {
	return s.evaluate(ind)
}

// Timetable 将结果转换为领域对象，没有最优个体时返回 nil
func (res *RunResult) Timetable(catalogID int64) *domain.Timetable {
	if res.Best == nil {
		return nil
	}

	timetable := &domain.Timetable{
		CatalogID: catalogID,
		Variant:   res.Variant.Name,
		Fitness:   res.Best.fitness,
		GeneCount: len(res.Best.genes),
		Entries:   make([]domain.TimetableEntry, len(res.Best.genes)),
		Stats:     make([]domain.GenerationStats, len(res.Stats)),
	}

	for i, gene := range res.Best.genes {
		timetable.Entries[i] = domain.TimetableEntry{
			TeacherID:   gene.TeacherID,
			Day:         gene.Day,
			Slot:        gene.Slot,
			CourseID:    gene.CourseID,
			ClassroomID: gene.ClassroomID,
		}
	}

	for i, stats := range res.Stats {
		timetable.Stats[i] = domain.GenerationStats{
			Generation:  stats.Generation,
			Evaluations: stats.Evaluations,
			Mean:        stats.Mean,
			Std:         stats.Std,
			Min:         stats.Min,
			Max:         stats.Max,
		}
	}

	return timetable
}
