package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sysu-ecnc-dev/timetabler/backend/internal/config"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/repository"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/seed"
	"github.com/sysu-ecnc-dev/timetabler/backend/internal/utils"
)

func main() {
	var op int
	var n int
	var catalogPath string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入示例目录, 2: 插入随机目录, 3: 插入随机用户)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.StringVar(&catalogPath, "catalog", "", "op 为 1 时从该 JSON 文件读取目录，为空时使用内置的示例目录")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := repository.OpenDB(cfg)
	if err != nil {
		logger.Error("无法连接到数据库", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if catalogPath == "" {
			seed.SeedSampleCatalog(repo)
			return
		}

		catalog, err := seed.LoadCatalog(catalogPath)
		if err != nil {
			slog.Error("无法读取目录文件", slog.String("error", err.Error()))
			return
		}
		if err := repo.CreateCatalog(catalog); err != nil {
			slog.Error("无法插入目录", slog.String("error", err.Error()))
			return
		}
		slog.Info("插入目录成功", slog.Int64("id", catalog.ID), slog.String("name", catalog.Name))
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的目录数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			catalog := utils.GenerateRandomCatalog()
			if err := repo.CreateCatalog(catalog); err != nil {
				slog.Error("无法插入目录", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("插入随机目录成功", slog.Int("count", cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("无法生成随机用户", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("插入用户成功", slog.Int("count", cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
