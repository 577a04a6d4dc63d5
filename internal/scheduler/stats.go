package scheduler

import "math"

// GenerationStats 是某一代种群冲突分数的统计
type GenerationStats struct {
	Generation  int
	Evaluations int // 这一代实际重新计算适应度的个体数
	Mean        float64
	Std         float64 // 总体标准差
	Min         int
	Max         int
}

func calcGenerationStats(gen int, evaluations int, pop []*Individual) GenerationStats {
	stats := GenerationStats{
		Generation:  gen,
		Evaluations: evaluations,
	}
	if len(pop) == 0 {
		return stats
	}

	stats.Min = pop[0].fitness
	stats.Max = pop[0].fitness
	sum := 0.0
	for _, ind := range pop {
		stats.Min = min(stats.Min, ind.fitness)
		stats.Max = max(stats.Max, ind.fitness)
		sum += float64(ind.fitness)
	}
	stats.Mean = sum / float64(len(pop))

	variance := 0.0
	for _, ind := range pop {
		variance += math.Pow(float64(ind.fitness)-stats.Mean, 2)
	}
	variance /= float64(len(pop))
	stats.Std = math.Sqrt(variance)

	return stats
}
