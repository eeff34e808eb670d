package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LENAX/chain-engine/pkg/api"
	"github.com/LENAX/chain-engine/pkg/cli/output"
	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

var (
	serverPort int
	configPath string
	serverHost string
)

// serverCmd server子命令
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "服务管理命令",
	Long:  `管理Chain Engine HTTP API服务。`,
}

// serverStartCmd 启动服务
var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "启动HTTP API服务",
	Long: `启动Chain Engine HTTP API服务。

示例：
  # 使用默认配置启动（127.0.0.1:8080）
  chain-engine server start

  # 指定端口启动
  chain-engine server start --port 9090

  # 指定配置文件启动
  chain-engine server start --config ./configs/engine.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 检查配置文件
		if configPath == "" {
			// 尝试默认配置路径
			defaultPaths := []string{
				"./configs/engine.yaml",
				"./config/engine.yaml",
				"./engine.yaml",
			}
			for _, p := range defaultPaths {
				if _, err := os.Stat(p); err == nil {
					configPath = p
					break
				}
			}
		}

		cfg, err := config.LoadFrameworkConfig(configPath)
		if err != nil {
			output.Error("加载配置失败: %v", err)
			return err
		}
		if configPath != "" {
			output.Info("使用配置文件: %s", configPath)
		} else {
			output.Warning("未找到配置文件，使用默认配置")
		}

		// 命令行参数覆盖配置文件
		if cmd.Flags().Changed("host") {
			cfg.ChainEngine.Server.Host = serverHost
		}
		if cmd.Flags().Changed("port") {
			cfg.ChainEngine.Server.Port = serverPort
		}

		// 创建Engine
		eng, err := engine.NewEngineBuilder(configPath).WithConfig(cfg).Build()
		if err != nil {
			output.Error("创建Engine失败: %v", err)
			return err
		}

		// 启动Engine
		ctx := context.Background()
		if err := eng.Start(ctx); err != nil {
			output.Error("启动Engine失败: %v", err)
			return err
		}

		// 创建并启动API服务器
		apiServer := api.NewAPIServer(eng, api.ServerConfigFrom(cfg), Version)
		if err := apiServer.Listen(); err != nil {
			eng.Stop()
			output.Error("监听失败: %v", err)
			return err
		}

		// 在goroutine中启动服务器
		errCh := make(chan error, 1)
		go func() {
			if err := apiServer.Start(); err != nil {
				log.Printf("API服务器错误: %v", err)
				errCh <- err
			}
		}()

		output.Success("Chain Engine Server started on %s", apiServer.Addr())

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		var serveErr error
		select {
		case <-quit:
		case serveErr = <-errCh:
		}

		output.Info("正在关闭服务...")

		// 优雅关闭
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ChainEngine.Server.WriteTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			output.Error("关闭API服务器失败: %v", err)
		}

		eng.Stop()
		if serveErr != nil {
			return fmt.Errorf("server stopped: %w", serveErr)
		}
		output.Success("服务已停止")

		return nil
	},
}

func init() {
	serverStartCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "监听端口")
	serverStartCmd.Flags().StringVarP(&serverHost, "host", "H", "127.0.0.1", "监听地址")
	serverStartCmd.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径")

	serverCmd.AddCommand(serverStartCmd)
}
