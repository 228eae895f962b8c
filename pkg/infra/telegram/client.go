// Package telegram is a minimal Telegram Bot API client covering the two
// endpoints the relay needs: sendMessage and sendDocument.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends messages and document uploads to a fixed chat
type Client struct {
	baseURL string
	token   string
	chatID  string

	// Text sends are quick; document uploads move up to 20MB and get a
	// separate, longer timeout
	msgClient    *http.Client
	uploadClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithBaseURL overrides the Bot API base URL, mainly for tests
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces both HTTP clients, mainly for tests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.msgClient = httpClient
		c.uploadClient = httpClient
	}
}

// New creates a new Telegram Bot API client for the given chat
func New(token, chatID string, opts ...Option) *Client {
	c := &Client{
		baseURL:      defaultBaseURL,
		token:        token,
		chatID:       chatID,
		msgClient:    &http.Client{Timeout: 10 * time.Second},
		uploadClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the envelope every Bot API call returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (c *Client) endpoint(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
}

// SendText posts a Markdown text message to the configured chat. Web page
// previews are disabled so release links do not expand into cards.
func (c *Client) SendText(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id":                  c.chatID,
		"text":                     text,
		"parse_mode":               "Markdown",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal sendMessage payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return goerr.Wrap(err, "failed to create sendMessage request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.execute(req, c.msgClient, "sendMessage")
}

// SendDocument uploads a named binary blob with an optional caption.
// Uploads are sent silently so the preceding text notification carries the
// only push alert.
func (c *Client) SendDocument(ctx context.Context, filename string, data []byte, caption string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"chat_id":              c.chatID,
		"caption":              caption,
		"parse_mode":           "Markdown",
		"disable_notification": "true",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return goerr.Wrap(err, "failed to write multipart field", goerr.V("field", name))
		}
	}

	if filename == "" {
		filename = "file.bin"
	}
	part, err := writer.CreateFormFile("document", filename)
	if err != nil {
		return goerr.Wrap(err, "failed to create multipart file part")
	}
	if _, err := part.Write(data); err != nil {
		return goerr.Wrap(err, "failed to write document content")
	}
	if err := writer.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("sendDocument"), &body)
	if err != nil {
		return goerr.Wrap(err, "failed to create sendDocument request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.execute(req, c.uploadClient, "sendDocument")
}

// execute runs a single-attempt Bot API call and checks both the HTTP
// status and the API-level ok flag
func (c *Client) execute(req *http.Request, httpClient *http.Client, method string) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "Telegram API request failed", goerr.V("method", method))
	}
	defer resp.Body.Close()

	// The Bot API reports failures with non-2xx status and a description
	// in the same JSON envelope
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return goerr.Wrap(err, "failed to read Telegram API response", goerr.V("method", method))
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return goerr.Wrap(err, "failed to decode Telegram API response",
			goerr.V("method", method), goerr.V("status", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK || !result.OK {
		return goerr.New("Telegram API call rejected",
			goerr.V("method", method),
			goerr.V("status", resp.StatusCode),
			goerr.V("description", result.Description))
	}

	return nil
}
