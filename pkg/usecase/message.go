package usecase

import (
	"fmt"
	"strings"

	"github.com/nekocat0/relaybot/pkg/domain/model"
	"github.com/nekocat0/relaybot/pkg/utils/mdtext"
)

// buildSummary formats the release announcement. All payload-sourced text
// passes through mdtext.Escape; URLs are embedded verbatim in link syntax.
func buildSummary(event *model.ReleaseEvent) string {
	var b strings.Builder

	b.WriteString("🔔 *New release published*\n\n")
	fmt.Fprintf(&b, "📦 Repository: [%s](%s)\n",
		mdtext.Escape(event.Repository.FullName), event.Repository.HTMLURL)
	fmt.Fprintf(&b, "🏷 Version: [%s](%s) - %s\n",
		mdtext.Escape(event.Release.TagName), event.Release.HTMLURL,
		mdtext.Escape(event.Release.Name))
	fmt.Fprintf(&b, "👤 Publisher: [%s](%s)\n",
		mdtext.Escape(event.Sender.Login), event.Sender.HTMLURL)
	fmt.Fprintf(&b, "📅 Published at: %s\n\n", event.Release.PublishedAt)
	b.WriteString(mdtext.Escape(event.Release.Body))

	return b.String()
}

// buildNoAssetNotice explains why no flash package arrived and points at
// the release page instead of failing silently
func buildNoAssetNotice(event *model.ReleaseEvent) string {
	return fmt.Sprintf(
		"⚠️ No kernel flash package detected\n\n"+
			"Possible causes:\n"+
			"1. The asset upload has not finished yet (GitHub delay)\n"+
			"2. The asset name does not match the expected pattern\n"+
			"3. The release does not include a flash package\n\n"+
			"Check the release page:\n[%s release page](%s)",
		mdtext.Escape(event.Release.TagName), event.Release.HTMLURL)
}

// buildLinkFallback names the asset and hands over a direct download link
// when automatic delivery is not possible
func buildLinkFallback(asset model.Asset) string {
	name := asset.Name
	if name == "" {
		name = "unknown"
	}
	return fmt.Sprintf(
		"⚠️ Could not upload the asset automatically: `%s`\n\nDownload it manually:\n%s",
		mdtext.Escape(name), asset.DownloadURL())
}

// buildCaption is the short description attached to a document upload
func buildCaption(event *model.ReleaseEvent, asset model.Asset) string {
	return fmt.Sprintf("%s asset: %s",
		mdtext.Escape(event.Release.TagName), mdtext.Escape(asset.Name))
}
