package intent

import "strings"

// The deterministic fallback classifier. Rules are evaluated in table order,
// first trigger match wins; order is load-bearing because utterances can hit
// several keyword sets at once ("play shutdown song" is media, not system).
//
// Word stripping is sequential substring replacement, each step trimmed. The
// artifacts that produces on unusual inputs are accepted: the fallback is a
// best-effort guess, and the terminal guard routes anything that strips to
// nothing into general_chat.

type fallbackRule struct {
	name     string
	triggers []string
	build    func(lower string) Intent
}

var (
	mediaTriggers     = []string{"play", "kelu", "pottu"}
	clipboardTriggers = []string{"copy", "paste", "clipboard"}
	openTriggers      = []string{"open", "launch", "start", "run", "thorakku", "thoraku", "pannu", "podu"}
	closeTriggers     = []string{"close", "quit", "exit", "stop", "muddu", "mudu"}
	searchTriggers    = []string{"search", "find", "lookup", "thedi", "google"}

	openFillers = []string{"the", "app", "application", "please", "computer", "system"}

	searchStrip = []string{"search for", "search", "find", "lookup", "thedi", "google", "on google", "in google"}
)

// systemActions maps trigger phrases to a power action, checked in order;
// shutdown is the default for a bare trigger match.
var systemActions = []struct {
	action string
	words  []string
}{
	{"shutdown", []string{"shutdown", "shut down", "power off", "turn off"}},
	{"restart", []string{"restart", "reboot", "reset"}},
	{"sleep", []string{"sleep", "suspend"}},
	{"hibernate", []string{"hibernate"}},
	{"logout", []string{"logout", "log out", "sign out"}},
	{"lock", []string{"lock"}},
}

var systemTriggers = flattenSystemTriggers()

func flattenSystemTriggers() []string {
	var out []string
	for _, group := range systemActions {
		out = append(out, group.words...)
	}
	return out
}

var fallbackRules = []fallbackRule{
	{name: "play_media", triggers: mediaTriggers, build: buildPlayMedia},
	{name: "clipboard_action", triggers: clipboardTriggers, build: buildClipboard},
	{name: "system_control", triggers: systemTriggers, build: buildSystemControl},
	{name: "open_app", triggers: openTriggers, build: buildOpenApp},
	{name: "close_app", triggers: closeTriggers, build: buildCloseApp},
	{name: "search_web", triggers: searchTriggers, build: buildSearchWeb},
}

// FallbackClassify is the deterministic keyword classifier: a pure function
// of the input text, total over all strings. The matched rule is final; if
// its stripped parameters come out empty the text routes to general_chat
// rather than trying later rules.
func FallbackClassify(text string) Intent {
	lower := strings.ToLower(text)

	for _, rule := range fallbackRules {
		if !containsAny(lower, rule.triggers) {
			continue
		}
		in := rule.build(lower)
		if in.Validate() == nil {
			return in
		}
		break
	}

	return Chat(text)
}

func buildPlayMedia(lower string) Intent {
	platform := "youtube"
	if strings.Contains(lower, "spotify") {
		platform = "spotify"
	} else if strings.Contains(lower, "soundcloud") {
		platform = "soundcloud"
	}

	query := stripWords(lower, "play", "kelu", "pottu", "on", "in", "la", platform)

	return New(ToolPlayMedia, map[string]string{
		"query":    query,
		"platform": platform,
	})
}

func buildClipboard(lower string) Intent {
	hasCopy := strings.Contains(lower, "copy")
	hasPaste := strings.Contains(lower, "paste")

	action := "copy_paste"
	if hasPaste && !hasCopy {
		action = "paste"
	} else if hasCopy && !hasPaste {
		action = "copy"
	}

	target := "notepad"
	if strings.Contains(lower, "vscode") || strings.Contains(lower, "vs code") {
		target = "vscode"
	} else if strings.Contains(lower, "notepad++") {
		target = "notepadplusplus"
	}

	return New(ToolClipboard, map[string]string{
		"action":     action,
		"target_app": target,
	})
}

func buildSystemControl(lower string) Intent {
	action := "shutdown"
	for _, group := range systemActions {
		if containsAny(lower, group.words) {
			action = group.action
			break
		}
	}

	return New(ToolSystemControl, map[string]string{"action": action})
}

func buildOpenApp(lower string) Intent {
	app := stripWords(lower, openTriggers...)
	app = stripWords(app, openFillers...)

	return New(ToolOpenApp, map[string]string{"app_name": app})
}

func buildCloseApp(lower string) Intent {
	app := stripWords(lower, closeTriggers...)

	return New(ToolCloseApp, map[string]string{"app_name": app})
}

func buildSearchWeb(lower string) Intent {
	query := stripWords(lower, searchStrip...)

	return New(ToolSearchWeb, map[string]string{"query": query})
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func stripWords(s string, words ...string) string {
	for _, w := range words {
		s = strings.TrimSpace(strings.ReplaceAll(s, w, ""))
	}
	return s
}
