package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
)

func TestDefaultParameters(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())

	assert.Equal(t, int32(100), p.PopulationSize)
	assert.Equal(t, int32(100), p.MaxGenerations)
	assert.Equal(t, int32(5), p.HallOfFameSize)
	assert.Equal(t, int32(3), p.TournamentSize)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, "mu-comma-lambda-50-100", p.Variants[0].Name)
	assert.Equal(t, AlgorithmMuCommaLambda, p.Variants[0].Algorithm)
	assert.Equal(t, "simple", p.Variants[1].Name)
	assert.Equal(t, 0.3, p.Variants[1].CrossoverRate)
	assert.Equal(t, 0.2, p.Variants[1].MutationRate)
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Parameters)
	}{
		{"种群大小为负", func(p *Parameters) { p.PopulationSize = -1 }},
		{"迭代次数为负", func(p *Parameters) { p.MaxGenerations = -1 }},
		{"名人堂容量为 0", func(p *Parameters) { p.HallOfFameSize = 0 }},
		{"锦标赛规模为 0", func(p *Parameters) { p.TournamentSize = 0 }},
		{"协程数为负", func(p *Parameters) { p.Workers = -2 }},
		{"没有变体", func(p *Parameters) { p.Variants = nil }},
		{"变体没有名称", func(p *Parameters) { p.Variants[1].Name = "" }},
		{"变体重名", func(p *Parameters) { p.Variants[1].Name = p.Variants[0].Name }},
		{"交叉概率超出范围", func(p *Parameters) { p.Variants[1].CrossoverRate = 1.5 }},
		{"变异概率为负", func(p *Parameters) { p.Variants[1].MutationRate = -0.1 }},
		{"mu 为 0", func(p *Parameters) { p.Variants[0].Mu = 0 }},
		{"lambda 小于 mu", func(p *Parameters) { p.Variants[0].Lambda = 10 }},
		{"概率之和超过 1", func(p *Parameters) {
			p.Variants[0].CrossoverRate = 0.7
			p.Variants[0].MutationRate = 0.5
		}},
		{"未知算法", func(p *Parameters) { p.Variants[1].Algorithm = "plus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.modify(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestParametersValidate_ZeroSizesAllowed(t *testing.T) {
	p := DefaultParameters()
	p.PopulationSize = 0
	p.MaxGenerations = 0
	p.Workers = 0

	assert.NoError(t, p.Validate())
}

func TestNewParametersFromConfig(t *testing.T) {
	cfg := &config.SchedulerConfig{
		PopulationSize: 30,
		MaxGenerations: 7,
		CrossoverRate:  0.5,
		MutationRate:   0.1,
		HallOfFameSize: 2,
		TournamentSize: 4,
		Mu:             10,
		Lambda:         25,
		Seed:           99,
		Workers:        3,
	}

	p := NewParametersFromConfig(cfg)
	require.NoError(t, p.Validate())

	assert.Equal(t, int32(30), p.PopulationSize)
	assert.Equal(t, int64(99), p.Seed)
	assert.Equal(t, "mu-comma-lambda-10-25", p.Variants[0].Name)
	assert.Equal(t, int32(25), p.Variants[0].Lambda)
	assert.Equal(t, 0.5, p.Variants[1].CrossoverRate)
}

func TestIndividualAccessors(t *testing.T) {
	genes := []Gene{{TeacherID: 1, CourseID: 2}}
	ind := NewIndividual(genes)
	genes[0].TeacherID = 9

	assert.Equal(t, int64(1), ind.Genes()[0].TeacherID)

	out := ind.Genes()
	out[0].TeacherID = 8
	assert.Equal(t, int64(1), ind.Genes()[0].TeacherID)

	_, valid := ind.Fitness()
	assert.False(t, valid)

	ind.setFitness(20)
	fitness, valid := ind.Fitness()
	assert.True(t, valid)
	assert.Equal(t, 20, fitness)

	ind.invalidate()
	_, valid = ind.Fitness()
	assert.False(t, valid)
}
