package driven

import (
	"context"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

// Backend defines the driven port for calls to the remote trail service.
// Execute never returns an error: every failure is reported as an absent
// Outcome with a diagnostic reason.
type Backend interface {
	Execute(ctx context.Context, req model.RequestDescriptor) model.Outcome
}

// OfflineNotifier is the UI collaborator that shows the one-time offline
// notice. Implementations decide how long the notice stays visible.
type OfflineNotifier interface {
	ShowOffline(ctx context.Context, notice model.OfflineNotice)
}
