package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/core/cache"
	"github.com/LENAX/chain-engine/pkg/core/chain"
	"github.com/LENAX/chain-engine/pkg/events"
	"github.com/LENAX/chain-engine/pkg/storage"
)

// ErrHistoryDisabled 未配置数据库时查询历史记录
var ErrHistoryDisabled = errors.New("calculation history is disabled")

// Outcome 一次计算的完整结果
type Outcome struct {
	RecordID    string        // 历史记录ID，未记录时为空
	RequestID   string        // 请求ID
	Fingerprint string        // 输入指纹
	Path        chain.Path    // 拓扑顺序的全部标签，失败时为空
	Result      chain.Result  // 首尾节点
	EdgeCount   int           // 请求中的边数（含重复）
	NodeCount   int           // 不同标签数
	Cached      bool          // 是否命中缓存
	Duration    time.Duration // 计算耗时
}

// cachedOutcome 缓存的计算结果（成功路径或确定性的链错误）
type cachedOutcome struct {
	path chain.Path
	err  error
}

// Engine 链计算服务（对外导出）
// 在纯计算核心外包装缓存、历史记录、事件发布和历史清理，不改变计算语义
type Engine struct {
	cfg       *config.EngineConfig
	cache     cache.ResultCache // 为nil时不缓存
	cacheTTL  time.Duration
	repo      storage.CalculationRepository // 为nil时不记录历史
	bus       events.Bus
	retention *RetentionScheduler // 为nil时不清理
	running   bool
	mu        sync.RWMutex
}

// NewEngine 使用给定依赖创建Engine（对外导出）
// repo 可为nil；bus 为nil时使用 NoopBus
func NewEngine(cfg *config.EngineConfig, repo storage.CalculationRepository, bus events.Bus) (*Engine, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if bus == nil {
		bus = &events.NoopBus{}
	}

	e := &Engine{
		cfg:  cfg,
		repo: repo,
		bus:  bus,
	}

	cacheCfg := cfg.ChainEngine.Storage.Cache
	if cacheCfg.Enabled {
		e.cache = cache.NewMemoryResultCache(cacheCfg.CleanInterval)
		e.cacheTTL = cacheCfg.DefaultTTL
	}

	retention := cfg.ChainEngine.History.Retention
	if retention.Enabled && repo != nil {
		rs, err := NewRetentionScheduler(repo, retention.Schedule, retention.MaxAge)
		if err != nil {
			return nil, fmt.Errorf("create retention scheduler failed: %w", err)
		}
		e.retention = rs
	}

	return e, nil
}

// Start 启动后台任务（历史清理）
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return fmt.Errorf("engine is already running")
	}
	if e.retention != nil {
		e.retention.Start()
	}
	e.running = true
	log.Printf("✅ [Engine] 已启动, Instance=%s, History=%t, Cache=%t",
		e.cfg.ChainEngine.General.InstanceName, e.repo != nil, e.cache != nil)
	return nil
}

// Stop 停止后台任务并释放缓存、事件总线和数据库连接
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.retention != nil {
		e.retention.Stop()
	}
	if e.cache != nil {
		e.cache.Close()
	}
	if err := e.bus.Close(); err != nil {
		log.Printf("⚠️ [Engine] 关闭事件总线失败: %v", err)
	}
	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			log.Printf("⚠️ [Engine] 关闭数据库失败: %v", err)
		}
	}
	e.running = false
	log.Println("✅ [Engine] 已停止")
}

// IsRunning 是否已启动
func (e *Engine) IsRunning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Config 返回引擎配置
func (e *Engine) Config() *config.EngineConfig {
	return e.cfg
}

// HistoryEnabled 是否记录计算历史
func (e *Engine) HistoryEnabled() bool {
	return e.repo != nil
}

// Run 计算链并记录历史、发布事件
// 计算失败时同时返回Outcome（含指纹和记录ID）和 *chain.ChainError
func (e *Engine) Run(ctx context.Context, requestID string, pairs []chain.Pair) (*Outcome, error) {
	start := time.Now()
	fp := ComputeFingerprint(pairs)
	out := &Outcome{
		RequestID:   requestID,
		Fingerprint: fp.Hash,
		EdgeCount:   len(pairs),
		NodeCount:   fp.NodeCount,
	}

	path, cached, err := e.resolve(fp.Hash, pairs)
	out.Cached = cached
	out.Duration = time.Since(start)
	if err == nil {
		out.Path = path
		out.Result = chain.Result{First: path[0], Last: path[len(path)-1]}
	}

	e.record(ctx, out, err)
	e.publish(ctx, out, err)
	return out, err
}

// Calculate 计算链的首尾节点
func (e *Engine) Calculate(ctx context.Context, requestID string, pairs []chain.Pair) (chain.Result, error) {
	out, err := e.Run(ctx, requestID, pairs)
	if err != nil {
		return chain.Result{}, err
	}
	return out.Result, nil
}

// Resolve 计算完整的链
func (e *Engine) Resolve(ctx context.Context, requestID string, pairs []chain.Pair) (chain.Path, error) {
	out, err := e.Run(ctx, requestID, pairs)
	if err != nil {
		return nil, err
	}
	return out.Path, nil
}

// resolve 先查缓存，未命中时调用计算核心并缓存结果
func (e *Engine) resolve(key string, pairs []chain.Pair) (chain.Path, bool, error) {
	if e.cache != nil {
		if v, ok := e.cache.Get(key); ok {
			if co, ok := v.(*cachedOutcome); ok {
				return clonePath(co.path), true, co.err
			}
			// 类型不符的条目直接丢弃
			_ = e.cache.Delete(key)
		}
	}

	path, err := chain.Resolve(pairs)

	if e.cache != nil {
		_ = e.cache.Set(key, &cachedOutcome{path: clonePath(path), err: err}, e.cacheTTL)
	}
	return path, false, err
}

// clonePath 复制路径，调用方拿到的切片不与缓存共享底层数组
func clonePath(p chain.Path) chain.Path {
	if p == nil {
		return nil
	}
	return append(chain.Path(nil), p...)
}

// record 保存历史记录；失败只记日志，不影响计算结果
func (e *Engine) record(ctx context.Context, out *Outcome, calcErr error) {
	if e.repo == nil {
		return
	}

	id, err := gonanoid.New()
	if err != nil {
		log.Printf("⚠️ [Engine] 生成记录ID失败: %v", err)
		return
	}

	rec := &storage.CalculationRecord{
		ID:          "calc-" + id,
		RequestID:   out.RequestID,
		Fingerprint: out.Fingerprint,
		EdgeCount:   out.EdgeCount,
		NodeCount:   out.NodeCount,
		Status:      storage.StatusSuccess,
		FirstLabel:  out.Result.First,
		LastLabel:   out.Result.Last,
		Cached:      out.Cached,
		DurationUS:  out.Duration.Microseconds(),
		CreateTime:  time.Now().UTC(),
	}
	if calcErr != nil {
		rec.Status = storage.StatusFailed
		rec.ErrorKind = errorKind(calcErr)
		rec.ErrorMessage = calcErr.Error()
	}

	if err := e.repo.Save(ctx, rec); err != nil {
		log.Printf("⚠️ [Engine] 保存计算记录失败, RequestID=%s: %v", out.RequestID, err)
		return
	}
	out.RecordID = rec.ID
}

// publish 发布计算事件；失败只记日志
func (e *Engine) publish(ctx context.Context, out *Outcome, calcErr error) {
	status := storage.StatusSuccess
	if calcErr != nil {
		status = storage.StatusFailed
	}

	ev := events.NewCalculationEvent(out.RequestID, out.Fingerprint, status)
	ev.RecordID = out.RecordID
	ev.First = out.Result.First
	ev.Last = out.Result.Last
	ev.EdgeCount = out.EdgeCount
	ev.NodeCount = out.NodeCount
	ev.Cached = out.Cached
	ev.DurationUS = out.Duration.Microseconds()
	if calcErr != nil {
		ev.ErrorKind = errorKind(calcErr)
		ev.Error = calcErr.Error()
	}

	if err := e.bus.Publish(ctx, events.TopicCalculated, ev); err != nil {
		log.Printf("⚠️ [Engine] 发布计算事件失败, RequestID=%s: %v", out.RequestID, err)
	}
}

// Subscribe 订阅计算事件
func (e *Engine) Subscribe(ctx context.Context) (<-chan []byte, error) {
	return e.bus.Subscribe(ctx, events.TopicCalculated)
}

// ListHistory 分页查询历史记录
func (e *Engine) ListHistory(ctx context.Context, opts storage.ListOptions) ([]*storage.CalculationRecord, int, error) {
	if e.repo == nil {
		return nil, 0, ErrHistoryDisabled
	}
	return e.repo.List(ctx, opts)
}

// GetHistory 查询单条历史记录，不存在时返回 storage.ErrRecordNotFound
func (e *Engine) GetHistory(ctx context.Context, id string) (*storage.CalculationRecord, error) {
	if e.repo == nil {
		return nil, ErrHistoryDisabled
	}
	rec, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, storage.ErrRecordNotFound
	}
	return rec, nil
}

// PurgeHistory 立即删除超过保留期的历史记录，返回删除条数
// 未启用定时清理时按配置的 max_age 计算截止时间
func (e *Engine) PurgeHistory(ctx context.Context) (int64, error) {
	if e.repo == nil {
		return 0, ErrHistoryDisabled
	}
	if e.retention != nil {
		return e.retention.Purge(ctx)
	}
	maxAge := e.cfg.ChainEngine.History.Retention.MaxAge
	if maxAge <= 0 {
		return 0, fmt.Errorf("retention max_age must be positive, got %s", maxAge)
	}
	return e.repo.DeleteBefore(ctx, time.Now().UTC().Add(-maxAge))
}

// EvictCache 删除指定指纹的缓存结果，返回是否存在
func (e *Engine) EvictCache(fingerprint string) bool {
	if e.cache == nil {
		return false
	}
	_, found := e.cache.Get(fingerprint)
	_ = e.cache.Delete(fingerprint)
	return found
}

// ClearCache 清空结果缓存，返回清除前的条目数
func (e *Engine) ClearCache() int {
	if e.cache == nil {
		return 0
	}
	n := e.cache.Len()
	_ = e.cache.Clear()
	return n
}

// CacheEnabled 是否启用结果缓存
func (e *Engine) CacheEnabled() bool {
	return e.cache != nil
}

// errorKind 返回链错误类别名称
func errorKind(err error) string {
	if ce, ok := chain.AsChainError(err); ok {
		return ce.Kind.String()
	}
	return "unknown"
}
