package telegram_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/nekocat0/relaybot/pkg/infra/telegram"
)

func TestClient_SendText(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	err := client.SendText(context.Background(), "hello *world*")

	gt.NoError(t, err)
	gt.Value(t, gotPath).Equal("/botbot-token/sendMessage")
	gt.Value(t, gotPayload["chat_id"]).Equal("12345")
	gt.Value(t, gotPayload["text"]).Equal("hello *world*")
	gt.Value(t, gotPayload["parse_mode"]).Equal("Markdown")
	gt.Value(t, gotPayload["disable_web_page_preview"]).Equal(true)
}

func TestClient_SendText_APIRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: message is too long"}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	err := client.SendText(context.Background(), "oversized")

	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("rejected")
}

func TestClient_SendText_OKFalseWithStatus200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	gt.Error(t, client.SendText(context.Background(), "hi"))
}

func TestClient_SendDocument(t *testing.T) {
	var gotPath string
	var gotFields map[string]string
	var gotFilename string
	var gotContent []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gt.NoError(t, r.ParseMultipartForm(1<<20))

		gotFields = map[string]string{}
		for name, values := range r.MultipartForm.Value {
			gotFields[name] = values[0]
		}

		file, header, err := r.FormFile("document")
		gt.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename
		gotContent, err = io.ReadAll(file)
		gt.NoError(t, err)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	err := client.SendDocument(context.Background(), "AnyKernel3.zip", []byte("zip bytes"), "v1.2.3 asset: AnyKernel3.zip")

	gt.NoError(t, err)
	gt.Value(t, gotPath).Equal("/botbot-token/sendDocument")
	gt.Value(t, gotFields["chat_id"]).Equal("12345")
	gt.Value(t, gotFields["caption"]).Equal("v1.2.3 asset: AnyKernel3.zip")
	gt.Value(t, gotFields["disable_notification"]).Equal("true")
	gt.Value(t, gotFilename).Equal("AnyKernel3.zip")
	gt.Value(t, gotContent).Equal([]byte("zip bytes"))
}

func TestClient_SendDocument_DefaultFilename(t *testing.T) {
	var gotFilename string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("document")
		gt.NoError(t, err)
		gotFilename = header.Filename
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	gt.NoError(t, client.SendDocument(context.Background(), "", []byte("x"), ""))
	gt.Value(t, gotFilename).Equal("file.bin")
}

func TestClient_SendDocument_UploadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Request Entity Too Large"}`))
	}))
	defer server.Close()

	client := telegram.New("bot-token", "12345", telegram.WithBaseURL(server.URL))
	err := client.SendDocument(context.Background(), "big.zip", []byte("data"), "")
	gt.Error(t, err)
}
