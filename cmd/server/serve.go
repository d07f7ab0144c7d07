package main

import (
	"fmt"
	"time"

	"github.com/Ravenry/kacamerah/common/logger"
	"github.com/Ravenry/kacamerah/common/utils"
	"github.com/Ravenry/kacamerah/internal/handler"
	"github.com/Ravenry/kacamerah/internal/logic"
	"github.com/Ravenry/kacamerah/internal/router"
	"github.com/Ravenry/kacamerah/internal/seed"
	"github.com/Ravenry/kacamerah/internal/svc"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddress string
	serveDemo    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Example: `  # 使用默认配置启动
  kacamerah serve

  # 指定监听地址并写入演示数据
  kacamerah serve --address :9090 --demo`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "监听地址，覆盖配置中的 host:port")
	serveCmd.Flags().BoolVar(&serveDemo, "demo", false, "启动前写入演示数据")
}

func runServe(cmd *cobra.Command, args []string) error {
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

	if serveDemo {
		if _, err := seed.New(svc.Ctx, uint64(time.Now().UnixNano())).Run(ctx, seed.DefaultCounts()); err != nil {
			return fmt.Errorf("写入演示数据失败: %w", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: handler.ErrorHandler,
	})
	router.Setup(app, cfg.Server.CORSOrigins)

	addr := serveAddress
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	errCh := make(chan error, 1)
	utils.SafeGoWithName("http-server", func() {
		logger.Info("服务器启动", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	})

	select {
	case err := <-errCh:
		return fmt.Errorf("服务器启动失败: %w", err)
	case <-ctx.Done():
	}

	logger.Info("正在关闭服务器...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("服务器关闭失败", zap.Error(err))
		return err
	}
	logger.Info("服务器已关闭")
	return nil
}
