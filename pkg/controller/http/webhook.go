package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nekocat0/relaybot/pkg/domain/interfaces"
	"github.com/nekocat0/relaybot/pkg/domain/model"
)

// defaultMaxBodyBytes bounds webhook payloads; release payloads with long
// notes stay well under this
const defaultMaxBodyBytes = 10 * 1024 * 1024

// WebhookHandler handles GitHub release webhooks
type WebhookHandler struct {
	secret       string
	maxBodyBytes int64
	releaseUC    interfaces.ReleaseUseCase
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(secret string, maxBodyBytes int64, releaseUC interfaces.ReleaseUseCase) *WebhookHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &WebhookHandler{
		secret:       secret,
		maxBodyBytes: maxBodyBytes,
		releaseUC:    releaseUC,
	}
}

// Handle processes webhook requests: size guard, signature check, parse,
// action filter, relay. The caller always gets 200 "OK" once the request
// passes validation; delivery problems are reported to the chat instead.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	if r.ContentLength > h.maxBodyBytes {
		logger.Warn("Webhook payload too large", "content_length", r.ContentLength)
		writeError(w, goerr.New("payload too large"), http.StatusRequestEntityTooLarge)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			logger.Warn("Webhook payload too large", "limit", maxBytesErr.Limit)
			writeError(w, goerr.New("payload too large"), http.StatusRequestEntityTooLarge)
			return
		}
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify before parsing. Nothing in an unauthenticated payload may be
	// decoded or acted on.
	signature := r.Header.Get("X-Hub-Signature-256")
	if !VerifySignature(h.secret, body, signature) {
		logger.Warn("Invalid webhook signature")
		writeError(w, goerr.New("invalid signature"), http.StatusForbidden)
		return
	}

	var event model.ReleaseEvent
	if err := json.Unmarshal(body, &event); err != nil {
		logger.Error("Failed to parse webhook payload", "error", err)
		writeError(w, goerr.Wrap(err, "invalid JSON payload"), http.StatusBadRequest)
		return
	}

	if !event.IsPublished() {
		logger.Info("Ignoring release event with non-published action",
			"action", event.Action,
			"repository", event.Repository.FullName,
		)
		respondOK(w)
		return
	}

	outcome, err := h.releaseUC.ProcessRelease(ctx, &event)
	if err != nil {
		logger.Error("Failed to process release event", "error", err)
		sentry.CaptureException(err)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	logger.Info("Release event handled",
		"repository", event.Repository.FullName,
		"tag", event.Release.TagName,
		"outcome", outcome.Kind,
		"reason", outcome.Reason,
	)
	respondOK(w)
}

// VerifySignature checks the X-Hub-Signature-256 header against an
// HMAC-SHA256 digest of the literal request bytes. It fails closed on a
// missing header or secret and compares in constant time.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}

// respondOK writes the fixed acknowledgment the webhook source expects
func respondOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
