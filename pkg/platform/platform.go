// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package platform describes the environment an error was captured in:
// browser and OS, device memory, viewport and page URL.
package platform

import (
	"os"
	"runtime"
	"strings"
)

// Browser identifies a known browser family.
type Browser string

// Known browsers.
const (
	BrowserUnknown          Browser = "Unknown"
	BrowserFirefox          Browser = "Firefox"
	BrowserOpera            Browser = "Opera"
	BrowserInternetExplorer Browser = "Internet Explorer"
	BrowserEdge             Browser = "Edge"
	BrowserChrome           Browser = "Chrome"
	BrowserSafari           Browser = "Safari"
)

// Browsers lists every known browser, Unknown last.
var Browsers = []Browser{
	BrowserFirefox, BrowserOpera, BrowserInternetExplorer, BrowserEdge,
	BrowserChrome, BrowserSafari, BrowserUnknown,
}

// ParseBrowser returns the browser with the given name.
func ParseBrowser(name string) (Browser, bool) {
	for _, b := range Browsers {
		if strings.EqualFold(string(b), name) {
			return b, true
		}
	}
	return BrowserUnknown, false
}

// OS identifies a known operating system family.
type OS string

// Known operating systems.
const (
	OSUnknown OS = "Unknown"
	OSWindows OS = "Windows"
	OSMacOS   OS = "MacOS"
	OSUnix    OS = "Unix"
	OSLinux   OS = "Linux"
	OSAndroid OS = "Android"
	OSiOS     OS = "iOS"
)

// Orientation is the shape of the viewport.
type Orientation string

// Viewport orientations.
const (
	OrientationUnknown   Orientation = "Unknown"
	OrientationLandscape Orientation = "Landscape"
	OrientationPortrait  Orientation = "Portrait"
	OrientationSquare    Orientation = "Square"
)

// OrientationOf classifies a width and height.
func OrientationOf(width, height int) Orientation {
	switch {
	case width == height:
		return OrientationSquare
	case width > height:
		return OrientationLandscape
	case width < height:
		return OrientationPortrait
	default:
		return OrientationUnknown
	}
}

// Software describes the browser and OS.
type Software struct {
	Browser  Browser `json:"browser"`
	OS       OS      `json:"os"`
	IsMobile bool    `json:"isMobile"`
	Lang     string  `json:"lang"`
}

// Hardware describes the device.
type Hardware struct {
	RAM float64 `json:"RAM"` // estimated device memory in GiB, 0 when unknown
}

// Viewport describes the visible area at the moment of an error.
type Viewport struct {
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Orientation Orientation `json:"orientation"`
}

// NewViewport builds a viewport with its orientation filled in.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, Orientation: OrientationOf(width, height)}
}

// Provider answers point-in-time platform lookups. Software and Hardware are
// read once when an engine initializes; Viewport and URL are read per error.
type Provider interface {
	Software() Software
	Hardware() Hardware
	Viewport() Viewport
	URL() string
}

// Static is a Provider backed by fixed values. ViewportFunc, when set,
// overrides the fixed viewport so it can change between errors.
type Static struct {
	Soft         Software
	Hard         Hardware
	View         Viewport
	Location     string
	ViewportFunc func() Viewport
}

// Software implements Provider.
func (s *Static) Software() Software { return s.Soft }

// Hardware implements Provider.
func (s *Static) Hardware() Hardware { return s.Hard }

// Viewport implements Provider.
func (s *Static) Viewport() Viewport {
	if s.ViewportFunc != nil {
		return s.ViewportFunc()
	}
	return s.View
}

// URL implements Provider.
func (s *Static) URL() string { return s.Location }

// FromUserAgent builds a static provider from a browser user agent string.
func FromUserAgent(userAgent, lang string, ram float64) *Static {
	return &Static{
		Soft: Software{
			Browser:  DetectBrowser(userAgent),
			OS:       DetectOS(userAgent),
			IsMobile: DetectMobile(userAgent),
			Lang:     lang,
		},
		Hard: Hardware{RAM: ram},
		View: NewViewport(0, 0),
	}
}

// Host returns a provider describing the current process: the OS comes from
// the Go runtime, the language from LANG, and the browser is Unknown.
func Host() *Static {
	return &Static{
		Soft: Software{
			Browser:  BrowserUnknown,
			OS:       hostOS(runtime.GOOS),
			IsMobile: runtime.GOOS == "android" || runtime.GOOS == "ios",
			Lang:     hostLang(os.Getenv("LANG")),
		},
		View: NewViewport(0, 0),
	}
}

func hostOS(goos string) OS {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	case "linux":
		return OSLinux
	case "android":
		return OSAndroid
	case "ios":
		return OSiOS
	case "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos", "aix":
		return OSUnix
	default:
		return OSUnknown
	}
}

// hostLang turns "en_US.UTF-8" into "en-US".
func hostLang(lang string) string {
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(lang, "_", "-")
}
