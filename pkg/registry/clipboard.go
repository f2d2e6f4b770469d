package registry

import "context"

// Clipboard access goes through the stock OS tools so no cgo or display
// library is needed: clip/pbcopy/xclip for writing, SendKeys/osascript/
// xdotool for the paste keystroke.

// Copy places text on the system clipboard.
func (r *Registry) Copy(ctx context.Context, text string) error {
	argv := clipboardCopyArgv(r.goos)
	r.logger.Debug("copying to clipboard", "bytes", len(text))
	return r.runner.RunInput(ctx, text, argv[0], argv[1:]...)
}

// PasteKeys sends the paste keystroke to the focused window.
func (r *Registry) PasteKeys(ctx context.Context) error {
	argv := pasteKeysArgv(r.goos)
	r.logger.Debug("sending paste keystroke")
	return r.runner.Run(ctx, argv[0], argv[1:]...)
}

func clipboardCopyArgv(goos string) []string {
	switch goos {
	case "windows":
		return []string{"clip"}
	case "darwin":
		return []string{"pbcopy"}
	default:
		return []string{"xclip", "-selection", "clipboard"}
	}
}

func pasteKeysArgv(goos string) []string {
	switch goos {
	case "windows":
		return []string{"powershell", "-NoProfile", "-Command", "(New-Object -ComObject WScript.Shell).SendKeys('^v')"}
	case "darwin":
		return []string{"osascript", "-e", `tell application "System Events" to keystroke "v" using command down`}
	default:
		return []string{"xdotool", "key", "--clearmodifiers", "ctrl+v"}
	}
}
