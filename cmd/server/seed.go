package main

import (
	"fmt"

	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/seed"
	"github.com/Ravenry/kacamerah/internal/svc"

	"github.com/spf13/cobra"
)

var (
	seedValue  uint64
	seedCounts = seed.DefaultCounts()
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入演示数据",
	Long:  `按固定随机种子生成客户、自由职业者、员工、项目、用户、任务与保存视图，相同种子生成相同数据。`,
	Example: `  kacamerah seed
  kacamerah seed --seed 7 --tasks 500`,
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.Uint64Var(&seedValue, "seed", 42, "随机种子")
	f.IntVar(&seedCounts.Clients, "clients", seedCounts.Clients, "客户数量")
	f.IntVar(&seedCounts.Freelancers, "freelancers", seedCounts.Freelancers, "自由职业者数量")
	f.IntVar(&seedCounts.Staff, "staff", seedCounts.Staff, "员工数量")
	f.IntVar(&seedCounts.Projects, "projects", seedCounts.Projects, "项目数量")
	f.IntVar(&seedCounts.Users, "users", seedCounts.Users, "用户数量")
	f.IntVar(&seedCounts.Tasks, "tasks", seedCounts.Tasks, "任务数量")
	f.IntVar(&seedCounts.Views, "views", seedCounts.Views, "保存视图数量")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Init(&cfg.Log)
	defer logger.Sync()

	stores, cleanup, err := openStores(ctx, cfg)
	defer cleanup()
	if err != nil {
		return err
	}
	if err := svc.Migrate(ctx, stores); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	svc.Init(cfg, logic.NewRegistry(cfg.Table), stores)
	if stores.Mongo == nil || cfg.Documents.Store != config.StoreDatabase {
		logger.Warn("文档实体使用内存存储，进程退出后不会保留")
	}

	got, err := seed.New(svc.Ctx, seedValue).Run(ctx, seedCounts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "clients=%d freelancers=%d staff=%d projects=%d users=%d tasks=%d views=%d\n",
		got.Clients, got.Freelancers, got.Staff, got.Projects, got.Users, got.Tasks, got.Views)
	return nil
}
