package domain

import "strings"

// iOS browsers other than Safari announce themselves with these tokens.
var iosThirdPartyBrowsers = []string{"CriOS", "FxiOS", "EdgiOS"}

// SupportedPlatform rejects iPhone browsers that are not Safari; the calling
// stack does not run in them.
func SupportedPlatform(userAgent string) bool {
	if !strings.Contains(userAgent, "iPhone") {
		return true
	}
	for _, token := range iosThirdPartyBrowsers {
		if strings.Contains(userAgent, token) {
			return false
		}
	}
	return true
}
