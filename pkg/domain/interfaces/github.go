package interfaces

import (
	"context"

	"github.com/nekocat0/relaybot/pkg/domain/model"
)

// ReleaseSource defines operations against the release-hosting API
type ReleaseSource interface {
	// ListAssets fetches the current asset listing of a release. Callers
	// re-query per retry attempt; implementations must not cache.
	ListAssets(ctx context.Context, ref model.ReleaseRef) ([]model.Asset, error)

	// DownloadAsset fetches asset content through the authenticated API
	// endpoint with an octet-stream accept header
	DownloadAsset(ctx context.Context, ref model.ReleaseRef, asset model.Asset) ([]byte, error)

	// DownloadPublic fetches content from a public download URL
	DownloadPublic(ctx context.Context, url string) ([]byte, error)
}
