package usecase

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nekocat0/relaybot/pkg/domain/interfaces"
	"github.com/nekocat0/relaybot/pkg/domain/model"
	"github.com/nekocat0/relaybot/pkg/utils/textsplit"
)

const (
	// defaultAssetPattern matches kernel flash packages such as
	// "AnyKernel3-v1.2.zip"
	defaultAssetPattern = `(?i)any.*kernel`

	defaultMaxAttempts  = 4
	defaultRetryDelay   = 2 * time.Second
	defaultSendPacing   = 300 * time.Millisecond
	defaultUploadLimit  = 20 * 1024 * 1024 // Telegram bot upload ceiling
	defaultMessageLimit = 4000             // below the 4096 hard limit, leaves marker headroom
)

type releaseUseCase struct {
	source   interfaces.ReleaseSource
	notifier interfaces.Notifier

	pattern      *regexp.Regexp
	maxAttempts  int
	retryDelay   time.Duration
	sendPacing   time.Duration
	uploadLimit  int64
	messageLimit int
	sleep        func(time.Duration)
}

// Option is a functional option for the release use case
type Option func(*releaseUseCase)

// WithAssetPattern sets the asset name pattern to select for upload
func WithAssetPattern(pattern *regexp.Regexp) Option {
	return func(uc *releaseUseCase) {
		uc.pattern = pattern
	}
}

// WithMaxAttempts sets how often the asset listing is re-queried
func WithMaxAttempts(n int) Option {
	return func(uc *releaseUseCase) {
		uc.maxAttempts = n
	}
}

// WithRetryDelay sets the wait between asset listing attempts
func WithRetryDelay(d time.Duration) Option {
	return func(uc *releaseUseCase) {
		uc.retryDelay = d
	}
}

// WithUploadLimit sets the byte ceiling for document uploads
func WithUploadLimit(n int64) Option {
	return func(uc *releaseUseCase) {
		uc.uploadLimit = n
	}
}

// WithMessageLimit sets the per-message character ceiling for text sends
func WithMessageLimit(n int) Option {
	return func(uc *releaseUseCase) {
		uc.messageLimit = n
	}
}

// WithSleep replaces the delay function so tests can run retries without
// real waiting
func WithSleep(sleep func(time.Duration)) Option {
	return func(uc *releaseUseCase) {
		uc.sleep = sleep
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(source interfaces.ReleaseSource, notifier interfaces.Notifier, opts ...Option) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		source:       source,
		notifier:     notifier,
		pattern:      regexp.MustCompile(defaultAssetPattern),
		maxAttempts:  defaultMaxAttempts,
		retryDelay:   defaultRetryDelay,
		sendPacing:   defaultSendPacing,
		uploadLimit:  defaultUploadLimit,
		messageLimit: defaultMessageLimit,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessRelease relays a published release: a chunked text summary first,
// then the matching asset as a document upload, degrading to a download
// link when the asset cannot be delivered. Delivery failures surface only
// in the destination chat, never as an error to the webhook caller.
func (uc *releaseUseCase) ProcessRelease(ctx context.Context, event *model.ReleaseEvent) (*model.DeliveryOutcome, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Processing published release",
		"repository", event.Repository.FullName,
		"tag", event.Release.TagName,
		"release_id", event.Release.ID,
		"sender", event.Sender.Login,
	)

	uc.sendChunked(ctx, buildSummary(event))

	ref, err := event.ReleaseRef()
	if err != nil {
		logger.Warn("Cannot resolve assets for event", "error", err)
		uc.sendText(ctx, buildNoAssetNotice(event))
		return model.Skipped("invalid repository reference"), nil
	}

	asset, found := uc.resolveAsset(ctx, ref)
	if !found {
		logger.Info("No matching asset after all attempts",
			"repository", event.Repository.FullName,
			"tag", event.Release.TagName,
			"attempts", uc.maxAttempts,
		)
		uc.sendText(ctx, buildNoAssetNotice(event))
		return model.Skipped("no matching asset found"), nil
	}

	logger.Info("Matched release asset",
		"asset_name", asset.Name,
		"asset_size", asset.Size,
	)

	return uc.deliverAsset(ctx, ref, asset, event), nil
}

// resolveAsset re-queries the asset listing until a name matches the
// pattern or attempts run out. Listing errors count as an empty listing for
// that attempt; asset publication lags the webhook, so a later attempt may
// still succeed.
func (uc *releaseUseCase) resolveAsset(ctx context.Context, ref model.ReleaseRef) (model.Asset, bool) {
	logger := ctxlog.From(ctx)

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		assets, err := uc.source.ListAssets(ctx, ref)
		if err != nil {
			logger.Warn("Asset listing failed, treating as empty",
				"error", err,
				"attempt", attempt,
			)
			assets = nil
		} else {
			logger.Debug("Fetched asset listing",
				"attempt", attempt,
				"asset_count", len(assets),
			)
		}

		for _, asset := range assets {
			if uc.pattern.MatchString(asset.Name) {
				return asset, true
			}
		}

		if attempt < uc.maxAttempts {
			uc.sleep(uc.retryDelay)
		}
	}

	return model.Asset{}, false
}

// deliverAsset fetches the asset content and uploads it, falling back to a
// link-only notice when fetching, the size ceiling, or the upload fails
func (uc *releaseUseCase) deliverAsset(ctx context.Context, ref model.ReleaseRef, asset model.Asset, event *model.ReleaseEvent) *model.DeliveryOutcome {
	logger := ctxlog.From(ctx)

	data, err := uc.fetchContent(ctx, ref, asset)
	if err != nil {
		logger.Warn("All download strategies failed", "error", err, "asset_name", asset.Name)
		uc.sendText(ctx, buildLinkFallback(asset))
		return model.FallbackLink("download failed")
	}

	if int64(len(data)) > uc.uploadLimit {
		// Policy rejection, not a transient failure. Retrying cannot
		// shrink the file.
		logger.Info("Asset exceeds upload ceiling, sending link instead",
			"asset_name", asset.Name,
			"size_bytes", len(data),
			"limit_bytes", uc.uploadLimit,
		)
		uc.sendText(ctx, buildLinkFallback(asset))
		return model.FallbackLink("asset exceeds upload size limit")
	}

	caption := buildCaption(event, asset)
	if err := uc.notifier.SendDocument(ctx, asset.Name, data, caption); err != nil {
		logger.Error("Document upload failed", "error", err, "asset_name", asset.Name)
		uc.sendText(ctx, buildLinkFallback(asset))
		return model.FallbackLink("document upload failed")
	}

	logger.Info("Asset delivered", "asset_name", asset.Name, "size_bytes", len(data))
	return model.Delivered()
}

// fetchContent tries the ordered download strategies and returns the first
// success
func (uc *releaseUseCase) fetchContent(ctx context.Context, ref model.ReleaseRef, asset model.Asset) ([]byte, error) {
	logger := ctxlog.From(ctx)

	type strategy struct {
		name  string
		fetch func(context.Context) ([]byte, error)
	}

	strategies := []strategy{
		{
			name: "api",
			fetch: func(ctx context.Context) ([]byte, error) {
				return uc.source.DownloadAsset(ctx, ref, asset)
			},
		},
	}
	if asset.BrowserURL != "" {
		strategies = append(strategies, strategy{
			name: "public",
			fetch: func(ctx context.Context) ([]byte, error) {
				return uc.source.DownloadPublic(ctx, asset.BrowserURL)
			},
		})
	}

	var failures []error
	for _, s := range strategies {
		data, err := s.fetch(ctx)
		if err == nil {
			logger.Debug("Downloaded asset content",
				"strategy", s.name,
				"size_bytes", len(data),
			)
			return data, nil
		}
		logger.Warn("Download strategy failed", "strategy", s.name, "error", err)
		failures = append(failures, err)
	}

	return nil, goerr.Wrap(errors.Join(failures...), "all download strategies failed",
		goerr.V("asset_name", asset.Name))
}

// sendChunked splits the text under the message limit and sends each
// segment in order with a short pause between parts
func (uc *releaseUseCase) sendChunked(ctx context.Context, text string) {
	segments := textsplit.WithPartMarkers(textsplit.Split(text, uc.messageLimit))
	for i, segment := range segments {
		uc.sendText(ctx, segment)
		if i < len(segments)-1 {
			uc.sleep(uc.sendPacing)
		}
	}
}

// sendText sends a single text message, logging failures instead of
// propagating them
func (uc *releaseUseCase) sendText(ctx context.Context, text string) {
	if err := uc.notifier.SendText(ctx, text); err != nil {
		ctxlog.From(ctx).Error("Failed to send text message",
			"error", err,
			"text_length", len(text),
		)
	}
}
