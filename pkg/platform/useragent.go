// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"regexp"
	"strings"
)

var (
	androidPattern = regexp.MustCompile(`(?i)Android`)
	iosPattern     = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)
	mobilePattern  = regexp.MustCompile(`(?i)android|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)
)

// DetectBrowser maps a user agent to a browser family. Order matters:
// Chrome user agents also mention Safari, and Edge ones mention Chrome.
func DetectBrowser(ua string) Browser {
	switch {
	case strings.Contains(ua, "Firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "Opera"), strings.Contains(ua, "OPR"):
		return BrowserOpera
	case strings.Contains(ua, "Trident"):
		return BrowserInternetExplorer
	case strings.Contains(ua, "Edge"):
		return BrowserEdge
	case strings.Contains(ua, "Chrome"):
		return BrowserChrome
	case strings.Contains(ua, "Safari"):
		return BrowserSafari
	default:
		return BrowserUnknown
	}
}

// DetectOS maps a user agent to an OS family.
func DetectOS(ua string) OS {
	switch {
	case strings.Contains(ua, "Win"):
		return OSWindows
	case strings.Contains(ua, "Mac"):
		return OSMacOS
	case strings.Contains(ua, "X11"):
		return OSUnix
	case strings.Contains(ua, "Linux"):
		return OSLinux
	case androidPattern.MatchString(ua):
		return OSAndroid
	case iosPattern.MatchString(ua):
		return OSiOS
	default:
		return OSUnknown
	}
}

// DetectMobile reports whether a user agent belongs to a mobile device.
func DetectMobile(ua string) bool {
	return mobilePattern.MatchString(ua)
}
