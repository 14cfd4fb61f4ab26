package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
	"github.com/ericfisherdev/trailtail/internal/domain/port/driven"
)

var _ driven.OfflineNotifier = (*consoleNotifier)(nil)

// consoleNotifier prints the offline notice to the terminal. A one-shot
// command has no banner to expire, so the line simply stays in scrollback.
type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func newConsoleNotifier(w io.Writer) *consoleNotifier {
	return &consoleNotifier{w: w}
}

func (n *consoleNotifier) ShowOffline(_ context.Context, notice model.OfflineNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "offline: %s\n", notice.Message)
}
