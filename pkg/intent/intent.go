// Package intent turns free-form voice commands into structured intents.
//
// Classification runs in two stages: a model-backed path that asks a local
// language model to emit an intent as JSON, and a deterministic keyword
// fallback that absorbs every model failure. The fallback is total: any input
// string, including garbage, resolves to a dispatchable intent or a
// general_chat carrying the original text.
package intent

import (
	"fmt"
	"strings"
)

// Tool names the action a command resolves to. The set is closed: these
// exact strings appear in the model prompt and in its JSON output.
type Tool string

const (
	ToolOpenApp       Tool = "open_app"
	ToolCloseApp      Tool = "close_app"
	ToolSearchWeb     Tool = "search_web"
	ToolSystemControl Tool = "system_control"
	ToolPlayMedia     Tool = "play_media"
	ToolClipboard     Tool = "clipboard_action"
	ToolGeneralChat   Tool = "general_chat"
)

// AllTools lists every dispatchable tool.
var AllTools = []Tool{
	ToolOpenApp,
	ToolCloseApp,
	ToolSearchWeb,
	ToolSystemControl,
	ToolPlayMedia,
	ToolClipboard,
	ToolGeneralChat,
}

// Valid reports whether t is a member of the closed tool set.
func (t Tool) Valid() bool {
	switch t {
	case ToolOpenApp, ToolCloseApp, ToolSearchWeb, ToolSystemControl,
		ToolPlayMedia, ToolClipboard, ToolGeneralChat:
		return true
	}
	return false
}

// requiredParams maps each tool to the parameters it cannot run without.
var requiredParams = map[Tool][]string{
	ToolOpenApp:       {"app_name"},
	ToolCloseApp:      {"app_name"},
	ToolSearchWeb:     {"query"},
	ToolSystemControl: {"action"},
	ToolPlayMedia:     {"query", "platform"},
	ToolClipboard:     {"action", "target_app"},
	ToolGeneralChat:   {"query"},
}

// RequiredParams returns the parameter names the tool needs to dispatch.
func RequiredParams(t Tool) []string {
	return requiredParams[t]
}

// Intent is the structured output of classification: one tool plus its
// parameters. Constructed fresh per utterance, consumed exactly once by the
// dispatcher, never persisted.
type Intent struct {
	Tool   Tool              `json:"tool"`
	Params map[string]string `json:"parameters"`
}

// New builds an intent, normalizing a nil parameter map to empty.
func New(tool Tool, params map[string]string) Intent {
	if params == nil {
		params = map[string]string{}
	}
	return Intent{Tool: tool, Params: params}
}

// Chat builds the general_chat intent that terminates every fallback path.
func Chat(query string) Intent {
	return New(ToolGeneralChat, map[string]string{"query": query})
}

// Param returns the named parameter, or "" when absent.
func (in Intent) Param(key string) string {
	return in.Params[key]
}

// Validate reports whether the intent may be dispatched: the tool must be in
// the closed set and every required parameter present and non-empty.
func (in Intent) Validate() error {
	if !in.Tool.Valid() {
		return fmt.Errorf("intent: unknown tool %q", in.Tool)
	}
	for _, key := range requiredParams[in.Tool] {
		if strings.TrimSpace(in.Params[key]) == "" {
			return fmt.Errorf("intent: %s requires parameter %q", in.Tool, key)
		}
	}
	return nil
}

func (in Intent) String() string {
	return fmt.Sprintf("%s%v", in.Tool, in.Params)
}
