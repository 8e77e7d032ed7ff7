package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/bookmarks/pkg/logger"
)

// ViewRecorder 异步浏览上报执行器：detail 页入队即返回，
// 上报失败或队列打满都不影响请求本身。
type ViewRecorder struct {
	ranking *RankingService
	ch      chan string
}

func NewViewRecorder(ranking *RankingService, queueSize int) *ViewRecorder {
	if queueSize <= 0 {
		queueSize = 10000
	}
	return &ViewRecorder{ranking: ranking, ch: make(chan string, queueSize)}
}

// Start launches the worker pool and returns a stop func that drains the
// queue for a short grace period.
func (r *ViewRecorder) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case imageID := <-r.ch:
					_ = r.ranking.RecordView(context.Background(), imageID)
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		// 先让 worker 把队列排空一小段时间，再停
		timeout := time.After(2 * time.Second)
		for len(r.ch) > 0 {
			select {
			case <-ctx.Done():
				close(stopCh)
				return ctx.Err()
			case <-timeout:
				close(stopCh)
				return nil
			default:
				time.Sleep(50 * time.Millisecond)
			}
		}
		close(stopCh)
		return nil
	}
}

// Enqueue records a view without blocking the caller. A full queue drops
// the event; the next view still counts.
func (r *ViewRecorder) Enqueue(imageID string) {
	select {
	case r.ch <- imageID:
	default:
		logger.Warn("view recorder queue full, drop view", zap.String("image", imageID))
	}
}

// QueueLen 返回当前队列长度（采样值）。
func (r *ViewRecorder) QueueLen() int { return len(r.ch) }
