package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/nekocat0/relaybot/pkg/domain/model"
)

func TestReleaseEvent_IsPublished(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		expected bool
	}{
		{name: "published action", action: "published", expected: true},
		{name: "created action", action: "created", expected: false},
		{name: "prereleased action", action: "prereleased", expected: false},
		{name: "deleted action", action: "deleted", expected: false},
		{name: "empty action", action: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.ReleaseEvent{Action: tt.action}
			if got := event.IsPublished(); got != tt.expected {
				t.Errorf("IsPublished() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestReleaseEvent_ReleaseRef(t *testing.T) {
	t.Run("valid full name", func(t *testing.T) {
		event := &model.ReleaseEvent{
			Repository: model.Repository{FullName: "nekocat0/kernel-build"},
			Release:    model.Release{ID: 42, TagName: "v1.2.3"},
		}

		ref, err := event.ReleaseRef()
		gt.NoError(t, err)
		gt.Value(t, ref.Owner).Equal("nekocat0")
		gt.Value(t, ref.Repo).Equal("kernel-build")
		gt.Value(t, ref.ID).Equal(int64(42))
		gt.Value(t, ref.Tag).Equal("v1.2.3")
	})

	t.Run("missing separator", func(t *testing.T) {
		event := &model.ReleaseEvent{
			Repository: model.Repository{FullName: "no-separator"},
		}
		_, err := event.ReleaseRef()
		gt.Error(t, err)
	})

	t.Run("empty owner", func(t *testing.T) {
		event := &model.ReleaseEvent{
			Repository: model.Repository{FullName: "/repo"},
		}
		_, err := event.ReleaseRef()
		gt.Error(t, err)
	})

	t.Run("empty repo", func(t *testing.T) {
		event := &model.ReleaseEvent{
			Repository: model.Repository{FullName: "owner/"},
		}
		_, err := event.ReleaseRef()
		gt.Error(t, err)
	})
}

func TestAsset_DownloadURL(t *testing.T) {
	t.Run("browser URL preferred", func(t *testing.T) {
		asset := model.Asset{
			APIURL:     "https://api.example.com/assets/1",
			BrowserURL: "https://example.com/download/a.zip",
		}
		gt.Value(t, asset.DownloadURL()).Equal("https://example.com/download/a.zip")
	})

	t.Run("API URL as fallback", func(t *testing.T) {
		asset := model.Asset{APIURL: "https://api.example.com/assets/1"}
		gt.Value(t, asset.DownloadURL()).Equal("https://api.example.com/assets/1")
	})
}
