package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ravenry/kacamerah/common/database"
	commonRedis "github.com/Ravenry/kacamerah/common/redis"
	"github.com/Ravenry/kacamerah/internal/cache"
	"github.com/Ravenry/kacamerah/internal/config"
	"github.com/Ravenry/kacamerah/internal/svc"

	"github.com/spf13/cobra"
)

// Version 当前版本号
const Version = "0.1.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "kacamerah",
	Short:   "多实体管理后台服务",
	Long:    `kacamerah 提供客户、自由职业者、项目、员工、用户与任务的表格查询和增删改接口。`,
	Version: Version,
	// 出错时只打印错误，不重复打印用法
	SilenceUsage: true,
}

// Execute 执行根命令
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认 $KACAMERAH_CONFIG 或 config/config.yml）")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(browseCmd)
}

// loadConfig 读取配置文件，未显式指定且默认文件不存在时使用默认配置
func loadConfig() (*config.Config, error) {
	path := config.Path(cfgFile)
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) && cfgFile == "" {
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}
	return cfg, nil
}

// openStores 按配置连接数据库、文档库与缓存，返回的 cleanup 逆序关闭连接
func openStores(ctx context.Context, cfg *config.Config) (svc.Stores, func(), error) {
	var (
		st      svc.Stores
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	if err := database.Init(&cfg.Database); err != nil {
		return st, cleanup, fmt.Errorf("初始化数据库失败: %w", err)
	}
	st.DB = database.GetDB()
	closers = append(closers, func() { _ = database.Close() })

	if cfg.Mongo.URI != "" {
		mdb, err := database.InitMongo(ctx, &cfg.Mongo)
		if err != nil {
			return st, cleanup, fmt.Errorf("连接 MongoDB 失败: %w", err)
		}
		st.Mongo = mdb
		closers = append(closers, func() { _ = database.CloseMongo(context.Background()) })
	}

	if cfg.Redis.Enabled {
		if _, err := commonRedis.Init(ctx, &cfg.Redis); err != nil {
			return st, cleanup, fmt.Errorf("连接 Redis 失败: %w", err)
		}
		st.Cache = cache.NewRedis()
		closers = append(closers, func() { _ = commonRedis.Close() })
	}
	return st, cleanup, nil
}
