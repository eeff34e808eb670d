package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/LENAX/chain-engine/pkg/api"
	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "./configs/engine.yaml", "引擎配置文件路径")
	host := flag.String("host", "", "监听地址（覆盖配置文件）")
	port := flag.Int("port", 0, "监听端口（覆盖配置文件）")
	flag.Parse()

	log.Printf("Chain Engine Server v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
	log.Printf("配置文件: %s", *configPath)

	// 1. 加载配置，命令行参数优先
	cfg, err := config.LoadFrameworkConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if *host != "" {
		cfg.ChainEngine.Server.Host = *host
	}
	if *port > 0 {
		cfg.ChainEngine.Server.Port = *port
	}

	// 2. 构建Engine
	eng, err := engine.NewEngineBuilder(*configPath).
		WithConfig(cfg).
		Build()
	if err != nil {
		log.Fatalf("创建Engine失败: %v", err)
	}

	// 3. 启动Engine
	ctx := context.Background()
	if err := eng.Start(ctx); err != nil {
		log.Fatalf("启动Engine失败: %v", err)
	}

	// 4. 创建API服务器
	apiServer := api.NewAPIServer(eng, api.ServerConfigFrom(cfg), Version)
	if err := apiServer.Listen(); err != nil {
		eng.Stop()
		log.Fatalf("监听失败: %v", err)
	}

	// 5. 在goroutine中启动API服务器
	errCh := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil {
			errCh <- err
		}
	}()

	log.Printf("✅ Chain Engine Server started on %s", apiServer.Addr())

	// 6. 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Printf("API服务器错误: %v", err)
	}

	log.Println("正在关闭服务...")

	// 7. 优雅关闭
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ChainEngine.Server.WriteTimeout)
	defer cancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭API服务器失败: %v", err)
	}

	eng.Stop()
	log.Println("✅ 服务已停止")
}
