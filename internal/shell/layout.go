// Package shell holds window geometry and lifecycle state for the
// gemdesk application windows.
package shell

// Shared application constants.
const (
	// TitlebarHeight is the height of the custom titlebar in logical
	// pixels. The content area is offset below it.
	TitlebarHeight = 32.0

	// GeminiURL is the origin of the wrapped web app.
	GeminiURL = "https://gemini.google.com"

	// Window labels.
	MainWindowLabel      = "main"
	QuickChatWindowLabel = "quick-chat"
	ContentViewLabel     = "gemini-content"
)

// Rect is a rectangle in physical pixels.
type Rect struct {
	X      int
	Y      int
	Width  uint32
	Height uint32
}

// ContentBounds calculates the bounds of the content area positioned
// below the titlebar.
//
// winWidth and winHeight are the window's inner size in physical
// pixels, scale is the DPI scale factor, and titlebarHeight is in
// logical pixels. When the window is shorter than the titlebar the
// content height clamps to zero.
func ContentBounds(winWidth, winHeight uint32, scale, titlebarHeight float64) Rect {
	titlebarPhys := uint32(titlebarHeight * scale)

	height := uint32(0)
	if winHeight > titlebarPhys {
		height = winHeight - titlebarPhys
	}

	return Rect{
		X:      0,
		Y:      int(titlebarPhys),
		Width:  winWidth,
		Height: height,
	}
}
