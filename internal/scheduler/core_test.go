package scheduler

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/seed"
)

func TestRandomInitIndividual(t *testing.T) {
	catalog := seed.SampleCatalog()
	s := newTestScheduler(t, testParameters(), catalog)
	rng := rand.New(rand.NewSource(1))

	for range 20 {
		ind := s.randomInitIndividual(rng)
		require.Equal(t, catalog.TotalOccurrences(), ind.Len())

		// 基因按课程顺序排列，每门课程连续出现 TimesPerWeek 次
		pos := 0
		for _, course := range catalog.Courses {
			for range course.TimesPerWeek {
				gene := ind.genes[pos]
				assert.Equal(t, course.ID, gene.CourseID)

				teacher, ok := catalog.TeacherByID(gene.TeacherID)
				require.True(t, ok)
				assert.Contains(t, teacher.CourseIDs, gene.CourseID)

				assert.GreaterOrEqual(t, gene.Day, int32(0))
				assert.Less(t, gene.Day, catalog.Days)
				assert.GreaterOrEqual(t, gene.Slot, int32(0))
				assert.Less(t, gene.Slot, catalog.Slots)

				_, ok = catalog.ClassroomByID(gene.ClassroomID)
				assert.True(t, ok)
				pos++
			}
		}
	}
}

func TestEvaluate(t *testing.T) {
	s := newTestScheduler(t, testParameters(), smallCatalog())

	tests := []struct {
		name  string
		genes []Gene
		want  int
	}{
		{
			name: "没有冲突",
			genes: []Gene{
				{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 0, Day: 0, Slot: 1, CourseID: 0, ClassroomID: 0},
				{TeacherID: 1, Day: 0, Slot: 0, CourseID: 1, ClassroomID: 1},
			},
			want: 0,
		},
		{
			name: "教师冲突",
			genes: []Gene{
				{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 1},
				{TeacherID: 1, Day: 1, Slot: 1, CourseID: 1, ClassroomID: 0},
			},
			want: 10,
		},
		{
			name: "教室冲突",
			genes: []Gene{
				{TeacherID: 0, Day: 1, Slot: 0, CourseID: 0, ClassroomID: 1},
				{TeacherID: 1, Day: 1, Slot: 0, CourseID: 0, ClassroomID: 1},
				{TeacherID: 1, Day: 0, Slot: 0, CourseID: 1, ClassroomID: 0},
			},
			want: 10,
		},
		{
			name: "三次重叠只罚一次",
			genes: []Gene{
				{TeacherID: 1, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 1, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 1, Day: 0, Slot: 0, CourseID: 1, ClassroomID: 0},
			},
			want: 20,
		},
		{
			name: "缺少课程",
			genes: []Gene{
				{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 0, Day: 0, Slot: 1, CourseID: 0, ClassroomID: 0},
			},
			want: 10,
		},
		{
			name: "排多了分数变小",
			genes: []Gene{
				{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 0, Day: 0, Slot: 1, CourseID: 0, ClassroomID: 0},
				{TeacherID: 0, Day: 1, Slot: 0, CourseID: 0, ClassroomID: 0},
				{TeacherID: 1, Day: 1, Slot: 1, CourseID: 1, ClassroomID: 1},
			},
			want: -10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Evaluate(NewIndividual(tt.genes)))
		})
	}
}

func TestEvaluate_SymmetricCoveragePenalty(t *testing.T) {
	p := testParameters()
	p.SymmetricCoveragePenalty = true
	s := newTestScheduler(t, p, smallCatalog())

	over := NewIndividual([]Gene{
		{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
		{TeacherID: 0, Day: 0, Slot: 1, CourseID: 0, ClassroomID: 0},
		{TeacherID: 0, Day: 1, Slot: 0, CourseID: 0, ClassroomID: 0},
		{TeacherID: 1, Day: 1, Slot: 1, CourseID: 1, ClassroomID: 1},
	})
	under := NewIndividual([]Gene{
		{TeacherID: 0, Day: 0, Slot: 0, CourseID: 0, ClassroomID: 0},
		{TeacherID: 0, Day: 0, Slot: 1, CourseID: 0, ClassroomID: 0},
	})

	assert.Equal(t, 10, s.Evaluate(over))
	assert.Equal(t, 10, s.Evaluate(under))
}

func TestEvaluate_PureAndDeterministic(t *testing.T) {
	s := newTestScheduler(t, testParameters(), seed.SampleCatalog())
	ind := s.randomInitIndividual(rand.New(rand.NewSource(3)))
	before := ind.Genes()

	first := s.evaluate(ind)
	second := s.evaluate(ind)

	assert.Equal(t, first, second)
	assert.Equal(t, before, ind.Genes())
	_, valid := ind.Fitness()
	assert.False(t, valid)
}

func TestSelectByTournament(t *testing.T) {
	s := newTestScheduler(t, testParameters(), smallCatalog())
	rng := rand.New(rand.NewSource(5))

	pop := make([]*Individual, 10)
	for i := range pop {
		pop[i] = &Individual{fitness: (i + 1) * 10, valid: true}
	}

	chosen := s.selectByTournament(rng, pop, 200)
	require.Len(t, chosen, 200)
	sum := 0
	for _, ind := range chosen {
		assert.Contains(t, pop, ind)
		sum += ind.fitness
	}
	// 种群平均分数为 55，选择压力应使被选中个体的平均分数明显更低
	assert.Less(t, float64(sum)/float64(len(chosen)), 45.0)

	assert.Empty(t, s.selectByTournament(rng, nil, 5))
}

func TestSelectByTournament_LargeTournamentPicksBest(t *testing.T) {
	p := testParameters()
	p.TournamentSize = 200
	s := newTestScheduler(t, p, smallCatalog())
	rng := rand.New(rand.NewSource(5))

	pop := make([]*Individual, 10)
	for i := range pop {
		pop[i] = &Individual{fitness: 100 - i, valid: true}
	}

	for _, ind := range s.selectByTournament(rng, pop, 5) {
		assert.Same(t, pop[9], ind)
	}
}

func TestTwoPointCrossover(t *testing.T) {
	s := newTestScheduler(t, testParameters(), seed.SampleCatalog())
	rng := rand.New(rand.NewSource(9))

	for range 50 {
		a := s.randomInitIndividual(rng)
		b := s.randomInitIndividual(rng)
		origA, origB := a.Genes(), b.Genes()

		s.twoPointCrossover(rng, a, b)

		require.Equal(t, len(origA), a.Len())
		require.Equal(t, len(origB), b.Len())

		// 每个位置上两个基因要么原样保留，要么整体互换
		swapped := 0
		for i := range origA {
			switch {
			case a.genes[i] == origA[i] && b.genes[i] == origB[i]:
			case a.genes[i] == origB[i] && b.genes[i] == origA[i]:
				swapped++
			default:
				t.Fatalf("位置 %d 的基因不是来自任一父本", i)
			}
			assert.Equal(t, origA[i].CourseID, a.genes[i].CourseID)
		}
		assert.Less(t, swapped, len(origA))
	}
}

func TestTwoPointCrossover_TooShort(t *testing.T) {
	s := newTestScheduler(t, testParameters(), singleCellCatalog())
	rng := rand.New(rand.NewSource(1))

	a := NewIndividual([]Gene{{TeacherID: 0, CourseID: 0}})
	b := NewIndividual([]Gene{{TeacherID: 0, CourseID: 0, ClassroomID: 0, Day: 0, Slot: 0}})
	genesA, genesB := a.Genes(), b.Genes()

	s.twoPointCrossover(rng, a, b)

	assert.Equal(t, genesA, a.Genes())
	assert.Equal(t, genesB, b.Genes())
}

func TestMutate(t *testing.T) {
	catalog := seed.SampleCatalog()
	s := newTestScheduler(t, testParameters(), catalog)
	rng := rand.New(rand.NewSource(11))

	for range 50 {
		ind := s.randomInitIndividual(rng)
		orig := ind.Genes()

		s.mutate(rng, ind)

		require.Equal(t, len(orig), ind.Len())
		changed := 0
		for i := range orig {
			assert.Equal(t, orig[i].CourseID, ind.genes[i].CourseID)
			if ind.genes[i] != orig[i] {
				changed++
			}

			teacher, ok := catalog.TeacherByID(ind.genes[i].TeacherID)
			require.True(t, ok)
			assert.True(t, slices.Contains(teacher.CourseIDs, ind.genes[i].CourseID))
		}
		assert.LessOrEqual(t, changed, 1)
	}
}
