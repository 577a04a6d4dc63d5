package scheduler

import (
	"math/rand"

	"github.com/sourcegraph/conc/pool"
)

// evaluatePopulation 只计算适应度失效的个体，返回本次计算的个数
// 计算适应度不消耗随机数，所以并行与否不影响结果
func (s *Scheduler) evaluatePopulation(pop []*Individual) int {
	invalid := make([]*Individual, 0, len(pop))
	for _, ind := range pop {
		if !ind.valid {
			invalid = append(invalid, ind)
		}
	}

	if s.parameters.Workers > 1 && len(invalid) > 1 {
		p := pool.New().WithMaxGoroutines(int(s.parameters.Workers))
		for _, ind := range invalid {
			p.Go(func() {
				ind.setFitness(s.evaluate(ind))
			})
		}
		p.Wait()
	} else {
		for _, ind := range invalid {
			ind.setFitness(s.evaluate(ind))
		}
	}

	return len(invalid)
}

// varAnd 先拷贝父代，再对相邻的两个后代以 CrossoverRate 的概率交叉，最后对每个后代以 MutationRate 的概率变异
func (s *Scheduler) varAnd(rng *rand.Rand, parents []*Individual, variant Variant) []*Individual {
	offspring := make([]*Individual, len(parents))
	for i, parent := range parents {
		offspring[i] = parent.clone()
	}

	for i := 1; i < len(offspring); i += 2 {
		if rng.Float64() < variant.CrossoverRate {
			s.twoPointCrossover(rng, offspring[i-1], offspring[i])
			offspring[i-1].invalidate()
			offspring[i].invalidate()
		}
	}

	for _, child := range offspring {
		if rng.Float64() < variant.MutationRate {
			s.mutate(rng, child)
			child.invalidate()
		}
	}

	return offspring
}

// varOr 生成 Lambda 个后代，每个后代只经历交叉、变异、复制三者之一
func (s *Scheduler) varOr(rng *rand.Rand, pop []*Individual, variant Variant) []*Individual {
	offspring := make([]*Individual, 0, variant.Lambda)

	for range variant.Lambda {
		op := rng.Float64()

		switch {
		case op < variant.CrossoverRate:
			// 选出两个不同的父本，只保留第一个孩子
			i := rng.Intn(len(pop))
			j := i
			if len(pop) > 1 {
				j = rng.Intn(len(pop) - 1)
				if j >= i {
					j++
				}
			}
			child1, child2 := pop[i].clone(), pop[j].clone()
			s.twoPointCrossover(rng, child1, child2)
			child1.invalidate()
			offspring = append(offspring, child1)
		case op < variant.CrossoverRate+variant.MutationRate:
			child := pop[rng.Intn(len(pop))].clone()
			s.mutate(rng, child)
			child.invalidate()
			offspring = append(offspring, child)
		default:
			offspring = append(offspring, pop[rng.Intn(len(pop))].clone())
		}
	}

	return offspring
}
