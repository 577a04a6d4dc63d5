package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/seed"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/utils"
)

func defaultSchedulerConfig(t *testing.T) *config.SchedulerConfig {
	t.Helper()

	cfg, err := config.LoadSchedulerConfig()
	require.NoError(t, err)
	return cfg
}

func TestBuildParameters_Defaults(t *testing.T) {
	p := buildParameters(defaultSchedulerConfig(t), &generateRequest{})

	assert.Equal(t, int32(100), p.PopulationSize)
	assert.Equal(t, int32(100), p.MaxGenerations)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, "mu-comma-lambda-50-100", p.Variants[0].Name)
}

func TestBuildParameters_Overrides(t *testing.T) {
	pop, gens, seedValue := int32(12), int32(3), int64(7)
	req := &generateRequest{
		PopulationSize: &pop,
		MaxGenerations: &gens,
		Seed:           &seedValue,
	}
	req.Variants = append(req.Variants, variantRequest{Name: "only-simple", Algorithm: "simple", CrossoverRate: 0.5, MutationRate: 0.5})

	p := buildParameters(defaultSchedulerConfig(t), req)

	assert.Equal(t, int32(12), p.PopulationSize)
	assert.Equal(t, int32(3), p.MaxGenerations)
	assert.Equal(t, int64(7), p.Seed)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, scheduler.AlgorithmSimple, p.Variants[0].Algorithm)
	assert.False(t, p.SymmetricCoveragePenalty)
	assert.NoError(t, p.Validate())
}

func TestBuildParameters_SymmetricCoveragePenalty(t *testing.T) {
	symmetric := true
	p := buildParameters(defaultSchedulerConfig(t), &generateRequest{SymmetricCoveragePenalty: &symmetric})

	assert.True(t, p.SymmetricCoveragePenalty)
}

func TestRunScheduler(t *testing.T) {
	catalog := seed.SampleCatalog()
	catalog.ID = 3

	p := buildParameters(defaultSchedulerConfig(t), &generateRequest{})
	p.PopulationSize = 20
	p.MaxGenerations = 3
	p.Seed = 1
	p.Variants = scheduler.DefaultVariants(10, 20, 0.3, 0.2)

	timetables, err := runScheduler(p, catalog, "batch")
	require.NoError(t, err)
	require.Len(t, timetables, 2)

	for _, timetable := range timetables {
		assert.Equal(t, int64(3), timetable.CatalogID)
		assert.Equal(t, "batch", timetable.BatchID)
		assert.Len(t, timetable.Stats, 4)
		assert.NoError(t, utils.ValidateTimetableWithCatalog(timetable, catalog))
	}
}

func TestRunScheduler_ConfigurationError(t *testing.T) {
	catalog := seed.SampleCatalog()
	catalog.Classrooms = nil

	_, err := runScheduler(scheduler.DefaultParameters(), catalog, "batch")
	assert.ErrorIs(t, err, scheduler.ErrInvalidCatalog)
}

func TestRunScheduler_ZeroPopulation(t *testing.T) {
	p := scheduler.DefaultParameters()
	p.PopulationSize = 0

	timetables, err := runScheduler(p, seed.SampleCatalog(), "batch")
	require.NoError(t, err)
	assert.Empty(t, timetables)
}

func TestBestTimetable(t *testing.T) {
	first := &domain.Timetable{Variant: "a", Fitness: 10}
	timetables := []*domain.Timetable{{Variant: "b", Fitness: 30}, first, {Variant: "c", Fitness: 10}}

	assert.Same(t, first, bestTimetable(timetables))
	assert.Nil(t, bestTimetable(nil))
}

func TestCatalogRequest_ToCatalog(t *testing.T) {
	req := catalogRequest{Name: "c", Days: 5, Slots: 8}
	req.Teachers = append(req.Teachers, teacherRequest{ID: 0, Name: "王芳"})

	catalog := req.toCatalog()

	require.Len(t, catalog.Teachers, 1)
	assert.Equal(t, "WF", catalog.Teachers[0].Code)
	assert.NotNil(t, catalog.Teachers[0].CourseIDs)
	assert.Empty(t, catalog.Classrooms)
}
