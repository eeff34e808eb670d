package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/engine"
)

// ServerConfig API服务器配置
type ServerConfig struct {
	Host         string        // 监听地址
	Port         int           // 监听端口，0表示随机端口
	ReadTimeout  time.Duration // 读取超时
	WriteTimeout time.Duration // 写入超时
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "127.0.0.1",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// ServerConfigFrom 从引擎配置生成服务器配置
func ServerConfigFrom(cfg *config.EngineConfig) ServerConfig {
	s := cfg.ChainEngine.Server
	return ServerConfig{
		Host:         s.Host,
		Port:         s.Port,
		ReadTimeout:  s.ReadTimeout,
		WriteTimeout: s.WriteTimeout,
	}
}

// APIServer HTTP API服务器
type APIServer struct {
	engine     *engine.Engine
	httpServer *http.Server
	listener   net.Listener
	config     ServerConfig
	version    string
	mu         sync.Mutex
}

// NewAPIServer 创建API服务器
func NewAPIServer(eng *engine.Engine, config ServerConfig, version string) *APIServer {
	return &APIServer{
		engine:  eng,
		config:  config,
		version: version,
	}
}

// Listen 绑定监听地址（Start会自动调用）
func (s *APIServer) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return nil
	}

	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server listen failed: %w", err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      SetupRouter(s.engine, s.version),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return nil
}

// Start 启动服务器，阻塞直到服务器关闭
func (s *APIServer) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}

	log.Printf("🚀 Chain Engine API Server starting on %s", s.Addr())

	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server serve failed: %w", err)
	}

	return nil
}

// Shutdown 优雅关闭服务器
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	log.Println("🛑 Shutting down API Server...")

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("✅ API Server stopped")
	return nil
}

// Addr 获取服务器地址（已监听时返回实际地址）
func (s *APIServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}
