package intent

import (
	"fmt"
	"strings"
)

// The intent prompt teaches the model the closed tool set, the exact
// parameter shapes, and bilingual worked examples, then demands bare JSON.
// Small local models drift without the examples.
const intentPromptTemplate = `You are a command interpreter for Tamil and English voice commands.
Classify this command into JSON with EXACT parameter names.

TOOLS AVAILABLE:
- open_app: Open applications, websites, or system functions
- close_app: Close running applications
- search_web: Search Google for information
- system_control: System commands (shutdown, restart, sleep)
- play_media: Play music/videos on platforms (YouTube, Spotify)
- clipboard_action: Copy/paste operations with apps
- general_chat: Conversations and questions

RULES:
- For apps: {"tool": "open_app", "parameters": {"app_name": "APP_NAME"}}
- For system: {"tool": "system_control", "parameters": {"action": "ACTION"}}
- For media: {"tool": "play_media", "parameters": {"query": "SEARCH_TERM", "platform": "PLATFORM"}}
- For clipboard: {"tool": "clipboard_action", "parameters": {"action": "copy/paste", "target_app": "APP_NAME"}}
- For closing: {"tool": "close_app", "parameters": {"app_name": "APP_NAME"}}
- For web search: {"tool": "search_web", "parameters": {"query": "SEARCH_QUERY"}}
- For chat: {"tool": "general_chat", "parameters": {"query": "USER_MESSAGE"}}

EXAMPLES:
- "play coolie songs on youtube" -> {"tool": "play_media", "parameters": {"query": "coolie songs", "platform": "youtube"}}
- "coolie songs youtube la play pannu" -> {"tool": "play_media", "parameters": {"query": "coolie songs", "platform": "youtube"}}
- "play tamil music on spotify" -> {"tool": "play_media", "parameters": {"query": "tamil music", "platform": "spotify"}}
- "copy code and paste in vscode" -> {"tool": "clipboard_action", "parameters": {"action": "copy_paste", "target_app": "vscode"}}
- "paste code in notepad" -> {"tool": "clipboard_action", "parameters": {"action": "paste", "target_app": "notepad"}}
- "open chrome" -> {"tool": "open_app", "parameters": {"app_name": "chrome"}}
- "shutdown computer" -> {"tool": "system_control", "parameters": {"action": "shutdown"}}

Command: "%s"
Return ONLY the JSON object:`

// IntentPrompt builds the classification prompt for one utterance.
func IntentPrompt(text string) string {
	return fmt.Sprintf(intentPromptTemplate, text)
}

// QAPrompt builds the generic question-answering prompt for chat queries.
func QAPrompt(query string) string {
	return fmt.Sprintf("Answer briefly and helpfully: %s", query)
}

// CodePrompt builds the code-generation prompt for the reasoning tier.
func CodePrompt(query string) string {
	return fmt.Sprintf("Generate clean, well-commented code for: %s\n\nProvide only the code with comments, no explanations:", query)
}

// codeRequestKeywords mark a chat query as a code-generation request.
var codeRequestKeywords = []string{
	"generate code", "write code", "create program",
	"code for", "program for", "script for",
}

// IsCodeRequest reports whether a chat query is asking for code.
func IsCodeRequest(query string) bool {
	return containsAny(strings.ToLower(query), codeRequestKeywords)
}

// codeMarkers identify model output that looks like source code and is worth
// keeping for clipboard operations.
var codeMarkers = []string{"def ", "import ", "class ", "func ", "package "}

// LooksLikeCode reports whether model output contains a source code marker.
func LooksLikeCode(response string) bool {
	for _, marker := range codeMarkers {
		if strings.Contains(response, marker) {
			return true
		}
	}
	return false
}
