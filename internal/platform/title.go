package platform

import "strings"

// normalizeTitle is applied to every title the window query reports, so a
// title picked from ListWindows compares equal to ActiveWindowTitle.
func normalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// foregroundTitle returns the normalized title of hwnd. A zero handle means
// no window has focus (lock screen, focus changing) and yields "".
func foregroundTitle(hwnd uintptr, text func(uintptr) string) string {
	if hwnd == 0 {
		return ""
	}
	return normalizeTitle(text(hwnd))
}
