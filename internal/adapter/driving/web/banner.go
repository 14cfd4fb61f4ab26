package web

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.OfflineNotifier = (*OfflineBanner)(nil)

// OfflineBanner holds the offline notice and reports it as visible for a
// fixed duration after it was raised.
type OfflineBanner struct {
	mu       sync.Mutex
	notice   model.OfflineNotice
	shownAt  time.Time
	raised   bool
	duration time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewOfflineBanner creates a banner that stays visible for duration.
func NewOfflineBanner(duration time.Duration, logger *slog.Logger) *OfflineBanner {
	return &OfflineBanner{
		duration: duration,
		now:      time.Now,
		logger:   logger,
	}
}

// ShowOffline records notice and starts the visibility window.
func (b *OfflineBanner) ShowOffline(_ context.Context, notice model.OfflineNotice) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notice = notice
	b.shownAt = b.now()
	b.raised = true

	b.logger.Info("offline mode",
		"path", notice.Path,
		"reason", notice.Reason,
		"visible_for", b.duration,
	)
}

// Current returns the notice and whether it is still visible.
func (b *OfflineBanner) Current() (model.OfflineNotice, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.raised || b.now().Sub(b.shownAt) >= b.duration {
		return model.OfflineNotice{}, false
	}
	return b.notice, true
}
