package registry

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Name cleaning strips vendor decorations so "Google Chrome (x64)" and
// "chrome" hit the same catalog entry.
var (
	parenSuffixRe   = regexp.MustCompile(`\s*\([^)]*\)$`)
	versionSuffixRe = regexp.MustCompile(`(?i)\s*(x64|64-bit|32-bit|build|version)[\s\d.]*$`)
)

// CleanName canonicalizes an application name: trailing parentheticals and
// architecture/version suffixes removed, lowercased.
func CleanName(name string) string {
	name = strings.TrimSpace(parenSuffixRe.ReplaceAllString(name, ""))
	name = strings.TrimSpace(versionSuffixRe.ReplaceAllString(name, ""))
	return strings.ToLower(name)
}

func webApps() map[string]string {
	return map[string]string{
		"youtube":   "https://www.youtube.com",
		"gmail":     "https://mail.google.com",
		"facebook":  "https://www.facebook.com",
		"twitter":   "https://www.twitter.com",
		"instagram": "https://www.instagram.com",
		"netflix":   "https://www.netflix.com",
		"amazon":    "https://www.amazon.com",
		"github":    "https://www.github.com",
		"reddit":    "https://www.reddit.com",
	}
}

func mediaPlatforms() map[string]MediaPlatform {
	return map[string]MediaPlatform{
		"youtube": {
			Name:      "youtube",
			BaseURL:   "https://www.youtube.com",
			SearchURL: "https://www.youtube.com/results?search_query=%s",
		},
		"spotify": {
			Name:      "spotify",
			BaseURL:   "https://open.spotify.com",
			SearchURL: "https://open.spotify.com/search/%s",
			AppLaunch: "spotify",
		},
		"soundcloud": {
			Name:      "soundcloud",
			BaseURL:   "https://soundcloud.com",
			SearchURL: "https://soundcloud.com/search?q=%s",
		},
	}
}

type appCandidates struct {
	name  string
	paths []string
}

// windowsManualCandidates lists well-known install locations checked in
// order. Bare executable names resolve through PATH at launch time and are
// accepted without an existence check.
func windowsManualCandidates(username string) []appCandidates {
	return []appCandidates{
		{"chrome", []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			fmt.Sprintf(`C:\Users\%s\AppData\Local\Google\Chrome\Application\chrome.exe`, username),
		}},
		{"firefox", []string{
			`C:\Program Files\Mozilla Firefox\firefox.exe`,
			`C:\Program Files (x86)\Mozilla Firefox\firefox.exe`,
		}},
		{"spotify", []string{
			fmt.Sprintf(`C:\Users\%s\AppData\Roaming\Spotify\Spotify.exe`, username),
			fmt.Sprintf(`C:\Users\%s\AppData\Local\Microsoft\WindowsApps\Spotify.exe`, username),
		}},
		{"whatsapp", []string{
			fmt.Sprintf(`C:\Users\%s\AppData\Local\WhatsApp\WhatsApp.exe`, username),
			fmt.Sprintf(`C:\Users\%s\AppData\Local\Microsoft\WindowsApps\WhatsApp.exe`, username),
		}},
		{"vscode", []string{
			fmt.Sprintf(`C:\Users\%s\AppData\Local\Programs\Microsoft VS Code\Code.exe`, username),
			`C:\Program Files\Microsoft VS Code\Code.exe`,
		}},
		{"notepad", []string{"notepad.exe"}},
		{"notepadplusplus", []string{
			`C:\Program Files\Notepad++\notepad++.exe`,
			`C:\Program Files (x86)\Notepad++\notepad++.exe`,
		}},
		{"calculator", []string{"calc.exe"}},
		{"paint", []string{"mspaint.exe"}},
	}
}

var linuxManualCandidates = []struct {
	name     string
	commands []string
}{
	{"chrome", []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser"}},
	{"firefox", []string{"firefox"}},
	{"spotify", []string{"spotify"}},
	{"vscode", []string{"code", "codium"}},
	{"notepad", []string{"gedit", "kate", "mousepad"}},
	{"notepadplusplus", []string{"notepad-plus-plus"}},
	{"calculator", []string{"gnome-calculator", "kcalc"}},
}

var darwinManualApps = []struct {
	name string
	app  string
}{
	{"chrome", "Google Chrome"},
	{"firefox", "Firefox"},
	{"spotify", "Spotify"},
	{"whatsapp", "WhatsApp"},
	{"vscode", "Visual Studio Code"},
	{"notepad", "TextEdit"},
	{"calculator", "Calculator"},
}

// manualCatalog builds the manual app table for one OS. lookPath and exists
// are injected so the table can be built against a fake filesystem in tests.
func manualCatalog(goos string, lookPath func(string) (string, error), exists func(string) bool) map[string][]string {
	manual := make(map[string][]string)

	switch goos {
	case "windows":
		username := os.Getenv("USERNAME")
		if username == "" {
			username = "User"
		}
		for _, app := range windowsManualCandidates(username) {
			for _, path := range app.paths {
				if exists(path) || !strings.HasPrefix(path, `C:`) {
					manual[app.name] = []string{path}
					break
				}
			}
		}
	case "darwin":
		for _, app := range darwinManualApps {
			manual[app.name] = []string{"open", "-a", app.app}
		}
	default:
		for _, app := range linuxManualCandidates {
			for _, cmd := range app.commands {
				if path, err := lookPath(cmd); err == nil {
					manual[app.name] = []string{path}
					break
				}
			}
		}
	}

	return manual
}

// processNames maps catalog names to the process image killed by close_app.
func processNames(goos string) map[string]string {
	if goos == "windows" {
		return map[string]string{
			"chrome":          "chrome.exe",
			"firefox":         "firefox.exe",
			"edge":            "msedge.exe",
			"spotify":         "Spotify.exe",
			"discord":         "Discord.exe",
			"vscode":          "Code.exe",
			"notepad":         "notepad.exe",
			"notepadplusplus": "notepad++.exe",
			"whatsapp":        "WhatsApp.exe",
			"calculator":      "Calculator.exe",
		}
	}
	return map[string]string{
		"chrome":          "chrome",
		"firefox":         "firefox",
		"edge":            "msedge",
		"spotify":         "spotify",
		"discord":         "Discord",
		"vscode":          "code",
		"notepad":         "gedit",
		"notepadplusplus": "notepad-plus-plus",
		"whatsapp":        "WhatsApp",
		"calculator":      "gnome-calculator",
	}
}
