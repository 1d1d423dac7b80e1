package clipboard

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/dpshade/wordsmith/internal/errors"
)

// writeAll is replaced in tests
var writeAll = clipboard.WriteAll

// unsupported reports whether no clipboard utility was found at startup
var unsupported = func() bool { return clipboard.Unsupported }

// Copy copies text to the system clipboard
func Copy(text string) error {
	if unsupported() {
		return errors.ClipboardError(fmt.Errorf("no clipboard utility found on %s", runtime.GOOS)).
			WithDetails(GetInstallInstructions())
	}
	if err := writeAll(text); err != nil {
		return errors.ClipboardError(err)
	}
	return nil
}

// CopyWithFallback attempts to copy to clipboard and returns a status message
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		return "", err
	}
	return "Copied to clipboard!", nil
}

// IsClipboardAvailable checks if clipboard functionality is available
func IsClipboardAvailable() bool {
	return !unsupported()
}

// GetInstallInstructions returns installation instructions for clipboard utilities
func GetInstallInstructions() string {
	switch runtime.GOOS {
	case "linux":
		return "Install a clipboard utility:\n" +
			"  • Ubuntu/Debian: sudo apt install xclip\n" +
			"  • Fedora/RHEL: sudo dnf install xclip\n" +
			"  • Arch: sudo pacman -S xclip\n" +
			"  • For Wayland: install wl-clipboard"
	case "darwin":
		return "pbcopy should be available by default on macOS"
	case "windows":
		return "clip should be available by default on Windows"
	default:
		return fmt.Sprintf("Clipboard not supported on %s", runtime.GOOS)
	}
}
