package service

import "regexp"

// The directory key is the identifier segment of /reel/<id>/ or /p/<id>/
// URLs. Other post URL forms fall back to the literal "unknown" and the
// run proceeds under that key; this is a fallback, not a failure path.
var shortcodePattern = regexp.MustCompile(`/(?:reel|p)/([A-Za-z0-9_-]+)`)

// Shortcode extracts the work item directory key from a post URL.
func Shortcode(postURL string) string {
	if m := shortcodePattern.FindStringSubmatch(postURL); m != nil {
		return m[1]
	}
	return "unknown"
}
