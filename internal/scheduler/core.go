package scheduler

import (
	"math/rand"
)

const conflictPenalty = 10

// randomInitIndividual 随机初始化一个个体
// 保证基因数量等于所有课程每周上课次数之和，且每个基因的教师都有资格讲授该课程，
// 但不保证没有时间或教室上的冲突，冲突交给适应度和搜索过程处理
func (s *Scheduler) randomInitIndividual(rng *rand.Rand) *Individual {
	genes := make([]Gene, 0, s.geneCount)

	for _, course := range s.catalog.Courses {
		teachers := s.index.qualifiedTeachers(course.ID)

		for range course.TimesPerWeek {
			genes = append(genes, Gene{
				TeacherID:   teachers[rng.Intn(len(teachers))],
				Day:         int32(rng.Intn(s.index.days)),
				Slot:        int32(rng.Intn(s.index.slots)),
				CourseID:    course.ID,
				ClassroomID: s.index.classroomIDs[rng.Intn(len(s.index.classroomIDs))],
			})
		}
	}

	return &Individual{
		genes: genes,
	}
}

/**
 * 计算个体的冲突分数（越小越好，0 表示没有检测到冲突）
 * conflicts = coverage + teacherClash + classroomClash
 * 其中:
 * 		1. coverage 为每门课程的 10 * (要求次数 - 实际次数)，注意这是有符号的，排多了会使分数变小
 * 		   开启 SymmetricCoveragePenalty 后取绝对值
 * 		2. teacherClash 为同一 (day, slot, teacher) 出现多于一次的组合数 * 10
 * 		3. classroomClash 为同一 (day, slot, classroom) 出现多于一次的组合数 * 10
 * 不修改个体本身
 */
func (s *Scheduler) evaluate(ind *Individual) int {
	conflicts := 0

	// 统计每门课程实际安排的次数
	courseCnt := make(map[int64]int32, len(s.catalog.Courses))
	for _, gene := range ind.genes {
		courseCnt[gene.CourseID]++
	}
	for _, course := range s.catalog.Courses {
		diff := int(course.TimesPerWeek - courseCnt[course.ID])
		if diff < 0 && s.parameters.SymmetricCoveragePenalty {
			diff = -diff
		}
		conflicts += conflictPenalty * diff
	}

	// 按 (day, slot) 建立一次索引，之后同时统计教师和教室的占用
	cells := s.index.days * s.index.slots
	teacherBusy := make([]int32, cells*len(s.index.teacherPos))
	classroomBusy := make([]int32, cells*len(s.index.classroomPos))

	for _, gene := range ind.genes {
		cell, ok := s.index.cell(gene.Day, gene.Slot)
		if !ok {
			continue
		}

		if pos, ok := s.index.teacherPos[gene.TeacherID]; ok {
			k := cell*len(s.index.teacherPos) + pos
			teacherBusy[k]++
			// 每个组合只罚一次，不论有多少个基因重叠
			if teacherBusy[k] == 2 {
				conflicts += conflictPenalty
			}
		}

		if pos, ok := s.index.classroomPos[gene.ClassroomID]; ok {
			k := cell*len(s.index.classroomPos) + pos
			classroomBusy[k]++
			if classroomBusy[k] == 2 {
				conflicts += conflictPenalty
			}
		}
	}

	return conflicts
}

// 锦标赛选择
// 每次有放回地随机抽取 TournamentSize 个个体，保留冲突分数最低的那个，重复 k 次
func (s *Scheduler) selectByTournament(rng *rand.Rand, pop []*Individual, k int) []*Individual {
	if len(pop) == 0 {
		return nil
	}

	chosen := make([]*Individual, 0, k)
	for range k {
		best := pop[rng.Intn(len(pop))]
		for i := 1; i < int(s.parameters.TournamentSize); i++ {
			candidate := pop[rng.Intn(len(pop))]
			if candidate.fitness < best.fitness {
				best = candidate
			}
		}
		chosen = append(chosen, best)
	}

	return chosen
}

// 两点交叉
// 交换两个个体在 [cx1, cx2) 之间的基因，整条基因一起交换，所以教师资格不会被破坏
func (s *Scheduler) twoPointCrossover(rng *rand.Rand, ind1 *Individual, ind2 *Individual) {
	size := min(len(ind1.genes), len(ind2.genes))
	if size < 2 {
		return
	}

	cx1 := rng.Intn(size) + 1
	cx2 := rng.Intn(size-1) + 1
	if cx2 >= cx1 {
		cx2++
	} else {
		cx1, cx2 = cx2, cx1
	}

	for i := cx1; i < cx2; i++ {
		ind1.genes[i], ind2.genes[i] = ind2.genes[i], ind1.genes[i]
	}
}

// 变异
// 随机选择一个基因，重新选择教师（仍需有资格讲授这门课程）、日期、节次和教室，课程保持不变
func (s *Scheduler) mutate(rng *rand.Rand, ind *Individual) {
	if len(ind.genes) == 0 {
		return
	}

	gene := &ind.genes[rng.Intn(len(ind.genes))]

	teachers := s.index.qualifiedTeachers(gene.CourseID)
	if len(teachers) > 0 {
		gene.TeacherID = teachers[rng.Intn(len(teachers))]
	}
	gene.Day = int32(rng.Intn(s.index.days))
	gene.Slot = int32(rng.Intn(s.index.slots))
	gene.ClassroomID = s.index.classroomIDs[rng.Intn(len(s.index.classroomIDs))]
}
