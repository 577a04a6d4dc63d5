package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/domain"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/report"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/scheduler"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/seed"
)

func main() {
	var envFile string
	var catalogPath string
	var seedValue int64
	var outDir string
	var writeXLSX bool
	var writePlot bool
	var statsEvery int
	var verbose bool
	var symmetric bool

	flag.StringVar(&envFile, "env", ".env", "环境变量文件，不存在时忽略")
	flag.StringVar(&catalogPath, "catalog", "", "目录 JSON 文件，为空时使用内置的示例目录")
	flag.Int64Var(&seedValue, "seed", 0, "随机数种子，为 0 时使用 SCHEDULER_SEED")
	flag.StringVar(&outDir, "out", ".", "输出目录")
	flag.BoolVar(&writeXLSX, "xlsx", false, "是否输出 xlsx 工作簿")
	flag.BoolVar(&writePlot, "plot", false, "是否输出适应度变化曲线")
	flag.IntVar(&statsEvery, "stats-every", 10, "每隔多少代输出一行统计")
	flag.BoolVar(&verbose, "v", false, "输出每一代的调试日志")
	flag.BoolVar(&symmetric, "symmetric", false, "课程排多了也扣分")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	/*** 读取配置 ***/
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("无法读取环境变量文件", "file", envFile, "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadSchedulerConfig()
	if err != nil {
		logger.Error("无法读取排课配置", "error", err)
		os.Exit(1)
	}

	parameters := scheduler.NewParametersFromConfig(cfg)
	if seedValue != 0 {
		parameters.Seed = seedValue
	}
	if symmetric {
		parameters.SymmetricCoveragePenalty = true
	}

	/*** 读取目录 ***/
	catalog := seed.SampleCatalog()
	if catalogPath != "" {
		catalog, err = seed.LoadCatalog(catalogPath)
		if err != nil {
			logger.Error("无法读取目录文件", "file", catalogPath, "error", err)
			os.Exit(1)
		}
	}

	s, err := scheduler.New(parameters, catalog, scheduler.WithLogger(logger))
	if err != nil {
		logger.Error("排课参数或目录不合法", "error", err)
		os.Exit(1)
	}

	/*** 运行 ***/
	results, err := s.Schedule()
	if err != nil {
		logger.Error("排课失败", "error", err)
		os.Exit(1)
	}

	if writeXLSX || writePlot {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			logger.Error("无法创建输出目录", "dir", outDir, "error", err)
			os.Exit(1)
		}
	}

	timetables := make([]*domain.Timetable, 0, len(results))
	rows := make([]report.SummaryRow, 0, len(results))
	for _, res := range results {
		timetable := res.Timetable(catalog.ID)
		if timetable == nil {
			logger.Warn("该算法变体没有产生课表", "variant", res.Variant.Name)
			continue
		}
		timetables = append(timetables, timetable)

		finalFitness, _ := res.FinalBest.Fitness()
		conflicts := s.Evaluate(res.FinalBest)
		fmt.Printf("\n[%s] seed=%d\n", res.Variant.Name, res.Seed)
		fmt.Printf("最后一代最优个体的冲突分数: %d\n", finalFitness)
		fmt.Printf("重新计算的冲突分数: %d\n", conflicts)
		fmt.Printf("基因数量: %d\n", res.FinalBest.Len())

		if err := report.RenderClassroomGrids(os.Stdout, catalog, timetable); err != nil {
			logger.Error("无法输出课表", "variant", res.Variant.Name, "error", err)
			os.Exit(1)
		}
		if err := report.RenderStats(os.Stdout, timetable, statsEvery); err != nil {
			logger.Error("无法输出统计", "variant", res.Variant.Name, "error", err)
			os.Exit(1)
		}

		rows = append(rows, report.SummaryRow{
			Variant:      res.Variant.Name,
			BestFitness:  timetable.Fitness,
			FinalFitness: finalFitness,
			Conflicts:    conflicts,
			GeneCount:    res.GeneCount,
			Evaluations:  res.Evaluations,
		})

		if writePlot {
			path := filepath.Join(outDir, fmt.Sprintf("fitness_%s.png", res.Variant.Name))
			if err := report.PlotFitness(timetable, path); err != nil {
				logger.Error("无法绘制适应度曲线", "variant", res.Variant.Name, "error", err)
				os.Exit(1)
			}
			logger.Info("已输出适应度曲线", "file", path)
		}
	}

	if err := report.RenderSummary(os.Stdout, rows); err != nil {
		logger.Error("无法输出汇总", "error", err)
		os.Exit(1)
	}

	if writeXLSX {
		path := filepath.Join(outDir, "timetable.xlsx")
		if err := report.WriteWorkbook(path, catalog, timetables); err != nil {
			logger.Error("无法输出工作簿", "error", err)
			os.Exit(1)
		}
		logger.Info("已输出工作簿", "file", path)
	}
}
