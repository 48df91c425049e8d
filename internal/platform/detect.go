package platform

import "runtime"

// detectOS maps runtime.GOOS onto the closed set of OS identifiers this
// package models. Anything other than darwin/windows is treated as Linux
// (i.e. generic XDG-following Unix), matching the teacher's stance that
// only macOS gets special-cased path handling.
func detectOS() string {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "windows":
		return Windows
	default:
		return Linux
	}
}
