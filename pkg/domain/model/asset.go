package model

// Asset represents a release attachment as reported by the GitHub API
type Asset struct {
	ID         int64  // Asset ID for the API content endpoint
	Name       string // File name as uploaded
	Size       int64  // Reported size in bytes, 0 when unknown
	APIURL     string // API endpoint for authenticated download
	BrowserURL string // Public browser_download_url
}

// DownloadURL returns the best link to hand to a human when automatic
// delivery fails
func (a Asset) DownloadURL() string {
	if a.BrowserURL != "" {
		return a.BrowserURL
	}
	return a.APIURL
}
