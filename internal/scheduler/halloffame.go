package scheduler

import "sort"

// HallOfFame 保存整个运行过程中出现过的最优个体（按冲突分数从小到大排列）
// 保存的是深拷贝，不受种群后续交叉变异的影响
type HallOfFame struct {
	maxSize int
	items   []*Individual
}

func NewHallOfFame(maxSize int) *HallOfFame {
	return &HallOfFame{
		maxSize: maxSize,
		items:   make([]*Individual, 0, maxSize),
	}
}

// Update 用已评估的个体更新名人堂
// 名人堂未满或个体严格优于当前最差成员时才会加入，基因完全相同的个体只保留一份
func (h *HallOfFame) Update(pop []*Individual) {
	if h.maxSize <= 0 {
		return
	}

	for _, ind := range pop {
		if len(h.items) == 0 {
			h.insert(ind)
			continue
		}

		worst := h.items[len(h.items)-1]
		if ind.fitness >= worst.fitness && len(h.items) >= h.maxSize {
			continue
		}

		duplicated := false
		for _, member := range h.items {
			if ind.sameGenes(member) {
				duplicated = true
				break
			}
		}
		if duplicated {
			continue
		}

		if len(h.items) >= h.maxSize {
			h.items = h.items[:len(h.items)-1]
		}
		h.insert(ind)
	}
}

// insert 将个体的拷贝插入到所有分数不低于它的成员之前
func (h *HallOfFame) insert(ind *Individual) {
	pos := sort.Search(len(h.items), func(i int) bool {
		return h.items[i].fitness >= ind.fitness
	})

	h.items = append(h.items, nil)
	copy(h.items[pos+1:], h.items[pos:])
	h.items[pos] = ind.clone()
}

// Best 返回名人堂中的最优个体，名人堂为空时返回 nil
func (h *HallOfFame) Best() *Individual {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

func (h *HallOfFame) Items() []*Individual {
	items := make([]*Individual, len(h.items))
	copy(items, h.items)
	return items
}

func (h *HallOfFame) Len() int {
	return len(h.items)
}
