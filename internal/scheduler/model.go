package scheduler

import (
	"fmt"
	"slices"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
)

// Gene: 表示一次上课安排，即某位教师在某天的某一节于某间教室讲授某门课程
type Gene struct {
	TeacherID   int64
	Day         int32
	Slot        int32
	CourseID    int64
	ClassroomID int64
}

// Individual: 一份完整的候选课表，每门课程的每一次上课对应一个基因
type Individual struct {
	genes   []Gene
	fitness int
	valid   bool // 为 false 时 fitness 已过期，需要重新计算
}

func NewIndividual(genes []Gene) *Individual {
	return &Individual{
		genes: slices.Clone(genes),
	}
}

// Genes 返回基因的副本
func (ind *Individual) Genes() []Gene {
	return slices.Clone(ind.genes)
}

func (ind *Individual) Len() int {
	return len(ind.genes)
}

// Fitness 返回缓存的适应度，第二个返回值表示缓存是否有效
func (ind *Individual) Fitness() (int, bool) {
	return ind.fitness, ind.valid
}

func (ind *Individual) setFitness(fitness int) {
	ind.fitness = fitness
	ind.valid = true
}

func (ind *Individual) invalidate() {
	ind.fitness = 0
	ind.valid = false
}

// clone 深拷贝个体，基因是值类型，复制切片即可
func (ind *Individual) clone() *Individual {
	return &Individual{
		genes:   slices.Clone(ind.genes),
		fitness: ind.fitness,
		valid:   ind.valid,
	}
}

func (ind *Individual) sameGenes(other *Individual) bool {
	return slices.Equal(ind.genes, other.genes)
}

type AlgorithmKind string

const (
	// 每一代用后代直接替换整个种群
	AlgorithmSimple AlgorithmKind = "simple"
	// 每一代生成 lambda 个后代，只从后代中选出 mu 个组成下一代
	AlgorithmMuCommaLambda AlgorithmKind = "mu-comma-lambda"
)

// Variant: 一种算法变体，多个变体在同一个目录上独立运行以便比较
type Variant struct {
	Name          string
	Algorithm     AlgorithmKind
	Mu            int32   // 仅 mu-comma-lambda 使用
	Lambda        int32   // 仅 mu-comma-lambda 使用
	CrossoverRate float64 // 交叉概率
	MutationRate  float64 // 变异概率
}

// 遗传算法参数
type Parameters struct {
	PopulationSize int32 // 种群大小
	MaxGenerations int32 // 最大迭代次数
	HallOfFameSize int32 // 名人堂容量
	TournamentSize int32 // 锦标赛规模
	Seed           int64 // 随机数种子，为 0 时使用当前时间
	Workers        int32 // 并行计算适应度的协程数，小于等于 1 时串行计算
	// 课程安排次数不等于要求次数时的罚分方式
	// 默认为 10 * (要求次数 - 实际次数)，排多了反而会减分；为 true 时改为 10 * |要求次数 - 实际次数|
	SymmetricCoveragePenalty bool
	Variants                 []Variant
}

func DefaultVariants(mu, lambda int32, crossoverRate, mutationRate float64) []Variant {
	return []Variant{
		{
			Name:          fmt.Sprintf("mu-comma-lambda-%d-%d", mu, lambda),
			Algorithm:     AlgorithmMuCommaLambda,
			Mu:            mu,
			Lambda:        lambda,
			CrossoverRate: crossoverRate,
			MutationRate:  mutationRate,
		},
		{
			Name:          "simple",
			Algorithm:     AlgorithmSimple,
			CrossoverRate: crossoverRate,
			MutationRate:  mutationRate,
		},
	}
}

func DefaultParameters() *Parameters {
	return &Parameters{
		PopulationSize: 100,
		MaxGenerations: 100,
		HallOfFameSize: 5,
		TournamentSize: 3,
		Workers:        1,
		Variants:       DefaultVariants(50, 100, 0.3, 0.2),
	}
}

func (p *Parameters) Validate() error {
	if p.PopulationSize < 0 {
		return fmt.Errorf("种群大小不能为负数（当前为 %d）", p.PopulationSize)
	}
	if p.MaxGenerations < 0 {
		return fmt.Errorf("迭代次数不能为负数（当前为 %d）", p.MaxGenerations)
	}
	if p.HallOfFameSize <= 0 {
		return fmt.Errorf("名人堂容量必须大于 0（当前为 %d）", p.HallOfFameSize)
	}
	if p.TournamentSize <= 0 {
		return fmt.Errorf("锦标赛规模必须大于 0（当前为 %d）", p.TournamentSize)
	}
	if p.Workers < 0 {
		return fmt.Errorf("并行协程数不能为负数（当前为 %d）", p.Workers)
	}
	if len(p.Variants) == 0 {
		return fmt.Errorf("至少需要一个算法变体")
	}

	seen := make(map[string]bool)
	for i, v := range p.Variants {
		if v.Name == "" {
			return fmt.Errorf("第 %d 个算法变体缺少名称", i+1)
		}
		if seen[v.Name] {
			return fmt.Errorf("算法变体 %s 重复", v.Name)
		}
		seen[v.Name] = true

		if v.CrossoverRate < 0 || v.CrossoverRate > 1 {
			return fmt.Errorf("算法变体 %s 的交叉概率必须在 [0, 1] 之间（当前为 %f）", v.Name, v.CrossoverRate)
		}
		if v.MutationRate < 0 || v.MutationRate > 1 {
			return fmt.Errorf("算法变体 %s 的变异概率必须在 [0, 1] 之间（当前为 %f）", v.Name, v.MutationRate)
		}

		switch v.Algorithm {
		case AlgorithmSimple:
		case AlgorithmMuCommaLambda:
			if v.Mu <= 0 {
				return fmt.Errorf("算法变体 %s 的 mu 必须大于 0（当前为 %d）", v.Name, v.Mu)
			}
			if v.Lambda < v.Mu {
				return fmt.Errorf("算法变体 %s 的 lambda 不能小于 mu（当前为 %d < %d）", v.Name, v.Lambda, v.Mu)
			}
			// 交叉、变异、复制三者互斥，概率之和不能超过 1
			if v.CrossoverRate+v.MutationRate > 1 {
				return fmt.Errorf("算法变体 %s 的交叉概率与变异概率之和不能超过 1", v.Name)
			}
		default:
			return fmt.Errorf("算法变体 %s 使用了未知的算法 %q", v.Name, v.Algorithm)
		}
	}

	return nil
}

// NewParametersFromConfig 用配置构建默认的两个算法变体
func NewParametersFromConfig(cfg *config.SchedulerConfig) *Parameters {
	return &Parameters{
		PopulationSize: cfg.PopulationSize,
		MaxGenerations: cfg.MaxGenerations,
		HallOfFameSize: cfg.HallOfFameSize,
		TournamentSize: cfg.TournamentSize,
		Seed:           cfg.Seed,
		Workers:        cfg.Workers,
		Variants:       DefaultVariants(cfg.Mu, cfg.Lambda, cfg.CrossoverRate, cfg.MutationRate),

		SymmetricCoveragePenalty: cfg.SymmetricCoveragePenalty,
	}
}
