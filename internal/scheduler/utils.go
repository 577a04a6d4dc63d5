package scheduler

// bestOf 返回种群中冲突分数最低的个体，分数相同时取靠前的
func bestOf(pop []*Individual) *Individual {
	if len(pop) == 0 {
		return nil
	}

	best := pop[0]
	for _, ind := range pop[1:] {
		if ind.fitness < best.fitness {
			best = ind
		}
	}
	return best
}
