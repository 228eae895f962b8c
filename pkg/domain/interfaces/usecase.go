package interfaces

import (
	"context"

	"github.com/nekocat0/relaybot/pkg/domain/model"
)

// ReleaseUseCase defines the interface for release event processing
type ReleaseUseCase interface {
	// ProcessRelease relays a published release to the destination chat and
	// reports how delivery concluded. The returned error covers internal
	// faults only; degraded deliveries are reported via the outcome.
	ProcessRelease(ctx context.Context, event *model.ReleaseEvent) (*model.DeliveryOutcome, error)
}
