package pluto

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/plutovoice/go-pluto/pkg/intent"
	"github.com/plutovoice/go-pluto/pkg/protocol"
	"github.com/plutovoice/go-pluto/pkg/registry"
)

// HandleCommand resolves one utterance end to end: classify, dispatch,
// respond. Commands are serialized; the loop, the REST API, and the control
// channel share this entry point. Every path ends in at least one spoken
// response, and a panic anywhere below is absorbed into the generic error
// reply so the loop survives.
func (a *App) HandleCommand(ctx context.Context, text, lang string) {
	a.cmdMu.Lock()
	defer a.cmdMu.Unlock()

	text = strings.TrimSpace(text)
	if len(text) < 2 {
		return
	}

	a.notifyLog(text, protocol.RoleUser, lang)
	a.notifyStatus(statusProcessing)

	completed := false
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("command processing panicked", "text", text, "panic", r)
			a.sayReply(replyCommandError, lang)
			a.notifyStatus(fmt.Sprintf("❌ Error: %v", r))
			return
		}
		if completed {
			a.notifyStatus(statusCompleted)
		}
	}()

	in := a.classifier.Classify(ctx, text)
	a.dispatch(ctx, in, lang)
	completed = true
}

// dispatch routes a classified intent to its tool handler. An out-of-set
// tool reroutes through general chat; an in-set intent missing required
// parameters gets the not-understood reply.
func (a *App) dispatch(ctx context.Context, in intent.Intent, lang string) {
	if !in.Tool.Valid() {
		a.logger.Warn("unknown tool, rerouting to chat", "tool", string(in.Tool))
		a.handleGeneralChat(ctx, "I'm not sure what you mean", lang)
		return
	}
	if err := in.Validate(); err != nil {
		a.logger.Warn("intent missing parameters", "intent", in.String(), "error", err)
		a.sayReply(replyNotUnderstood, lang)
		return
	}

	a.logger.Info("dispatching", "tool", string(in.Tool), "params", in.Params)

	switch in.Tool {
	case intent.ToolOpenApp:
		a.handleOpenApp(ctx, in.Param("app_name"), lang)
	case intent.ToolCloseApp:
		a.handleCloseApp(ctx, in.Param("app_name"), lang)
	case intent.ToolSearchWeb:
		a.handleSearchWeb(ctx, in.Param("query"), lang)
	case intent.ToolSystemControl:
		a.handleSystemControl(ctx, in.Param("action"), lang)
	case intent.ToolPlayMedia:
		a.handlePlayMedia(ctx, in.Param("query"), in.Param("platform"), lang)
	case intent.ToolClipboard:
		a.handleClipboard(ctx, in.Param("action"), in.Param("target_app"), lang)
	case intent.ToolGeneralChat:
		a.handleGeneralChat(ctx, in.Param("query"), lang)
	}
}

func (a *App) handleOpenApp(ctx context.Context, appName, lang string) {
	appName = strings.TrimSpace(appName)

	cap, ok := a.registry.Resolve(appName)
	if !ok {
		a.sayReply(replyAppNotFound, lang, appName)
		return
	}

	if err := a.registry.Launch(ctx, cap); err != nil {
		a.logger.Error("launch failed", "app", appName, "error", err)
		a.sayReply(replyActionFailed, lang)
		return
	}

	if cap.Kind == registry.KindSystem {
		a.sayReply(replyExecuting, lang, appName)
	} else {
		a.sayReply(replyOpening, lang, appName)
	}
}

func (a *App) handleCloseApp(ctx context.Context, appName, lang string) {
	appName = strings.TrimSpace(appName)

	switch a.registry.Terminate(ctx, appName) {
	case registry.TerminateClosed:
		a.sayReply(replyClosed, lang, appName)
	case registry.TerminateNotRunning:
		a.sayReply(replyNotRunning, lang, appName)
	default:
		a.sayReply(replyCloseUnknown, lang, appName)
	}
}

func (a *App) handleSearchWeb(ctx context.Context, query, lang string) {
	query = strings.TrimSpace(query)

	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)
	if err := a.registry.OpenURL(ctx, searchURL); err != nil {
		a.logger.Error("web search failed", "query", query, "error", err)
		a.sayReply(replySearchFailed, lang)
		return
	}
	a.sayReply(replySearchDone, lang, query)
}

func (a *App) handleSystemControl(ctx context.Context, action, lang string) {
	action = strings.ToLower(strings.TrimSpace(action))

	announcement, known := systemAnnouncements[action]
	cap, ok := a.registry.Resolve(action)
	if !known || !ok || cap.Kind != registry.KindSystem {
		a.sayReply(replyUnknownAction, lang, action)
		return
	}

	// Announce first: shutdown and restart carry a grace period, the rest
	// take effect immediately.
	a.sayReply(announcement, lang)

	if err := a.registry.Launch(ctx, cap); err != nil {
		a.logger.Error("system command failed", "action", action, "error", err)
		a.sayReply(replySystemFailed, lang)
	}
}

func (a *App) handlePlayMedia(ctx context.Context, query, platform, lang string) {
	query = strings.TrimSpace(query)
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = "youtube"
	}

	if err := a.registry.PlayMedia(ctx, query, platform); err != nil {
		a.logger.Error("media playback failed", "platform", platform, "query", query, "error", err)
		a.sayReply(replyPlayFailed, lang, query, platform)
		return
	}

	switch platform {
	case "youtube":
		a.sayReply(replyPlayYouTube, lang, query)
	case "spotify":
		a.sayReply(replyPlaySpotify, lang, query)
	default:
		a.sayReply(replyPlayGeneric, lang, query, platform)
	}
}

func (a *App) handleClipboard(ctx context.Context, action, target, lang string) {
	action = strings.ToLower(strings.TrimSpace(action))
	target = strings.ToLower(strings.TrimSpace(target))

	switch action {
	case "copy":
		a.copyCode(ctx, lang)
	case "paste":
		a.pasteInto(ctx, target, lang, false)
	case "copy_paste":
		if a.copyCode(ctx, lang) {
			a.pasteInto(ctx, target, lang, true)
		}
	default:
		a.sayReply(replyNotUnderstood, lang)
	}
}

// copyCode puts the last generated code on the system clipboard. Reports
// whether a paste may follow.
func (a *App) copyCode(ctx context.Context, lang string) bool {
	code := a.classifier.LastCode()
	if code == "" {
		a.sayReply(replyNoCode, lang)
		return false
	}

	if err := a.registry.Copy(ctx, code); err != nil {
		a.logger.Error("clipboard copy failed", "error", err)
		a.sayReply(replyClipboardFailed, lang)
		return false
	}

	a.sayReply(replyCodeCopied, lang)
	return true
}

// pasteInto opens the target app, waits out its warm-up, and sends the paste
// keystroke. Paste alone delivers whatever the clipboard holds; withCode only
// changes the confirmation wording.
func (a *App) pasteInto(ctx context.Context, target, lang string, withCode bool) {
	cap, ok := a.registry.Resolve(target)
	if !ok {
		a.sayReply(replyTargetNotFound, lang, target)
		return
	}

	if err := a.registry.Launch(ctx, cap); err != nil {
		a.logger.Error("paste target failed to launch", "app", target, "error", err)
		a.sayReply(replyTargetNotOpened, lang, target)
		return
	}

	if err := sleepCtx(ctx, a.warmup); err != nil {
		return
	}

	if err := a.registry.PasteKeys(ctx); err != nil {
		a.logger.Error("paste keystroke failed", "error", err)
		a.sayReply(replyClipboardFailed, lang)
		return
	}

	if withCode {
		a.sayReply(replyCodePasted, lang, target)
	} else {
		a.sayReply(replyPasted, lang, target)
	}
}

func (a *App) handleGeneralChat(ctx context.Context, query, lang string) {
	query = strings.TrimSpace(query)
	if query == "" {
		a.sayReply(replyChatUnsure, lang)
		return
	}

	lower := strings.ToLower(query)
	for _, g := range greetingReplies {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				a.sayReply(g.r, lang)
				return
			}
		}
	}

	if intent.IsCodeRequest(lower) {
		a.generateCode(ctx, query, lang)
		return
	}

	answer, ok := a.classifier.Generate(ctx, intent.QAPrompt(query), query, intent.TierFast)
	if !ok {
		a.sayReply(replyChatUnsure, lang)
		return
	}
	a.speak(answer, lang)
}

// generateCode asks the reasoning tier for code. The classifier caches any
// code-looking response for later clipboard commands; a response that isn't
// code is spoken as a plain answer.
func (a *App) generateCode(ctx context.Context, query, lang string) {
	response, ok := a.classifier.Generate(ctx, intent.CodePrompt(query), query, intent.TierReasoning)
	if !ok {
		a.sayReply(replyChatUnsure, lang)
		return
	}

	if intent.LooksLikeCode(response) {
		a.sayReply(replyCodeGenerated, lang)
		return
	}
	a.speak(response, lang)
}
