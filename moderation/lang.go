package moderation

import "github.com/abadojack/whatlanggo"

// DetectLang returns the ISO-639-1 code of the detected language, or
// an empty string when detection is inconclusive.
func DetectLang(content string) string {
	info := whatlanggo.Detect(content)
	return info.Lang.Iso6391()
}
