package pluto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/plutovoice/go-pluto/pkg/debug"
	"github.com/plutovoice/go-pluto/pkg/listen"
	"github.com/plutovoice/go-pluto/pkg/protocol"
)

// Capture windows and rest intervals for the listening loop. Idle captures
// are short to keep the loop responsive; the follow-up window after a wake
// word is generous because the user is mid-sentence.
const (
	idleTimeout          = 3 * time.Second
	idlePhraseLimit      = 6 * time.Second
	followupTimeout      = 8 * time.Second
	followupLimit        = 10 * time.Second
	loopPause            = 200 * time.Millisecond
	pausedRest           = 500 * time.Millisecond
	errorRest            = time.Second
	missRest             = 2 * time.Second
	maxConsecutiveMisses = 5
)

// listenLoop is the continuous capture loop: grab one utterance, decide
// whether it was a wake word, a direct command, or noise, and act. Runs
// until the context is cancelled; pausing only suspends capture.
func (a *App) listenLoop(ctx context.Context) {
	fmt.Println("🎙️  Starting wake-word enabled listener...")
	a.announceReady(ctx)

	misses := 0
	for {
		if ctx.Err() != nil {
			return
		}
		if !a.Listening() {
			if sleepCtx(ctx, pausedRest) != nil {
				return
			}
			continue
		}

		a.notifyStatus(statusIdle)

		// Drain queued speech before opening the mic so the assistant
		// doesn't capture its own voice.
		if a.speaker.Flush(ctx) != nil {
			return
		}

		u, err := a.listener.Listen(ctx, idleTimeout, idlePhraseLimit)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			a.logger.Error("listener failed", "error", err)
			a.notifyStatus(fmt.Sprintf("Listener error: %v", err))
			if sleepCtx(ctx, errorRest) != nil {
				return
			}
			continue
		}

		if u.Empty() {
			misses++
			debug.HearLog("👂 empty capture (%d in a row)\n", misses)
			if misses > maxConsecutiveMisses {
				a.logger.Debug("repeated empty captures, resting")
				if sleepCtx(ctx, missRest) != nil {
					return
				}
				misses = 0
			}
			continue
		}
		misses = 0

		text := strings.TrimSpace(u.Text)
		a.logger.Info("heard", "text", text, "lang", u.Lang)
		a.setLanguage(u.Lang)

		det := DetectUtterance(text)
		switch {
		case det.Wake:
			a.handleWake(ctx, text)
		case det.Direct:
			a.notifyLog("Direct command: "+text, protocol.RoleUser, a.Language())
			a.HandleCommand(ctx, text, a.Language())
		default:
			debug.HearLog("👂 ignored: %q\n", text)
			a.logger.Debug("no wake word or command pattern", "text", text)
		}

		if sleepCtx(ctx, loopPause) != nil {
			return
		}
	}
}

// handleWake acknowledges the wake word and captures the follow-up command.
func (a *App) handleWake(ctx context.Context, text string) {
	lang := a.Language()
	a.logger.Info("wake word detected", "text", text)
	a.notifyLog("Wake word: "+text, protocol.RoleUser, lang)
	a.notifyStatus(statusWakeDetected)

	a.sayReply(replyWakeAck, lang)
	if a.speaker.Flush(ctx) != nil {
		return
	}

	u, err := a.listener.Listen(ctx, followupTimeout, followupLimit)
	if err != nil {
		a.logger.Error("follow-up capture failed", "error", err)
	}
	cmd := strings.TrimSpace(u.Text)
	if err != nil || len(cmd) <= 2 {
		a.sayReply(replyNoCommand, a.Language())
		return
	}

	// The follow-up only switches the session toward Tamil; an English
	// follow-up after a Tamil wake keeps the session where it was.
	if u.Lang == listen.LangTamil {
		a.setLanguage(listen.LangTamil)
	}
	a.HandleCommand(ctx, cmd, a.Language())
}

// announceReady reports catalog and model availability once at startup.
func (a *App) announceReady(ctx context.Context) {
	st := a.Status(ctx)

	connectivity := "Offline"
	if st.Online {
		connectivity = "Online"
	}
	fmt.Printf("🤖 System: %s\n", connectivity)
	fmt.Printf("📱 Models: %v\n", st.AvailableModels)
	fmt.Printf("🔧 Manual Apps: %d\n", st.CapabilityCounts["manual"])
	fmt.Printf("🌐 Web Apps: %d\n", st.CapabilityCounts["web"])

	a.notifyLog(fmt.Sprintf("Enhanced system ready | Manual: %d | Web: %d | Models: %d",
		st.CapabilityCounts["manual"], st.CapabilityCounts["web"], len(st.AvailableModels)),
		protocol.RoleSystem, listen.LangEnglish)
}

// sleepCtx pauses without outliving the context.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
