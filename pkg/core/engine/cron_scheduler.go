package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LENAX/chain-engine/pkg/storage"
)

// RetentionScheduler 历史记录清理调度器（对外导出）
// 按cron表达式定期删除超过保留期的计算记录
type RetentionScheduler struct {
	cron     *cron.Cron
	repo     storage.CalculationRepository
	schedule string
	maxAge   time.Duration
	entryID  cron.EntryID
	running  bool
	now      func() time.Time
	mu       sync.Mutex
}

// NewRetentionScheduler 创建清理调度器（对外导出）
// schedule 支持标准5段表达式和 @every/@daily 等描述符
func NewRetentionScheduler(repo storage.CalculationRepository, schedule string, maxAge time.Duration) (*RetentionScheduler, error) {
	if repo == nil {
		return nil, fmt.Errorf("retention requires a history repository")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("retention max_age must be positive, got %s", maxAge)
	}

	rs := &RetentionScheduler{
		cron:     cron.New(),
		repo:     repo,
		schedule: schedule,
		maxAge:   maxAge,
		now:      time.Now,
	}

	entryID, err := rs.cron.AddFunc(schedule, func() {
		if _, err := rs.Purge(context.Background()); err != nil {
			log.Printf("❌ [历史清理] 清理失败: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("添加Cron任务失败: %w", err)
	}
	rs.entryID = entryID
	return rs, nil
}

// Purge 立即删除超过保留期的记录，返回删除条数
func (rs *RetentionScheduler) Purge(ctx context.Context) (int64, error) {
	cutoff := rs.now().UTC().Add(-rs.maxAge)
	n, err := rs.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("✅ [历史清理] 已删除%d条早于%s的记录", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}

// NextRun 下一次执行时间（调度器未启动时为零值）
func (rs *RetentionScheduler) NextRun() time.Time {
	return rs.cron.Entry(rs.entryID).Next
}

// Start 启动调度器（对外导出）
func (rs *RetentionScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.running {
		return
	}
	rs.cron.Start()
	rs.running = true
	log.Printf("✅ [历史清理] 调度器已启动, Schedule=%s, MaxAge=%s", rs.schedule, rs.maxAge)
}

// Stop 停止调度器并等待正在执行的清理完成（对外导出）
func (rs *RetentionScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if !rs.running {
		return
	}
	<-rs.cron.Stop().Done()
	rs.running = false
	log.Println("✅ [历史清理] 调度器已停止")
}
