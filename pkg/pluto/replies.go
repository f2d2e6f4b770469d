package pluto

// reply is one bilingual response line. Tamil text is romanized, matching
// what the speech recognizer hears back from users.
type reply struct {
	en string
	ta string
}

// pick returns the line for a language tag, falling back to English.
func (r reply) pick(lang string) string {
	if lang == "ta" {
		return r.ta
	}
	return r.en
}

// Fixed responses. Placeholders take the app, query, or platform the handler
// is acting on.
var (
	replyWakeAck       = reply{"Yes, how can I help?", "Sollunga, enna help venum?"}
	replyNoCommand     = reply{"I didn't hear a command", "Command kekkala"}
	replyNotUnderstood = reply{"Sorry, I didn't understand that command", "Command puriyala, marupadiyum sollunga"}
	replyCommandError  = reply{"Sorry, I had an error processing that", "Error aachu, mannichanga"}

	replyAppNotFound  = reply{"I couldn't find %s", "%s kandupidikka mudiyala"}
	replyOpening      = reply{"Opening %s", "%s thorakkuren"}
	replyExecuting    = reply{"Executing %s", "%s panren"}
	replyActionFailed = reply{"Sorry, couldn't complete that action", "Adhu panna mudiyala"}

	replyClosed       = reply{"Closed %s", "%s mudditten"}
	replyNotRunning   = reply{"%s is not running", "%s odala"}
	replyCloseUnknown = reply{"Don't know how to close %s", "%s mudda theriyala"}

	replySearchDone   = reply{"Here's what I found for %s", "%s pathi Google-la search pannitten"}
	replySearchFailed = reply{"Sorry, couldn't perform the search", "Search panna mudiyala"}

	replyPlayYouTube = reply{"Playing %s on YouTube", "%s YouTube-la play panren"}
	replyPlaySpotify = reply{"Playing %s on Spotify", "%s Spotify-la kekka pottutten"}
	replyPlayGeneric = reply{"Playing %s on %s", "%s %s-la play panren"}
	replyPlayFailed  = reply{"Sorry, couldn't play %s on %s", "%s %s-la play panna mudiyala"}

	replyCodeCopied      = reply{"Code copied to clipboard", "Code clipboard-la copy pannitten"}
	replyCodePasted      = reply{"Code pasted in %s", "Code %s-la paste pannitten"}
	replyPasted          = reply{"Pasted in %s", "%s-la paste pannitten"}
	replyNoCode          = reply{"No code to copy", "Copy panna code illai"}
	replyTargetNotFound  = reply{"Couldn't find %s", "%s kandupidikka mudiyala"}
	replyTargetNotOpened = reply{"Couldn't open %s", "%s thorakka mudiyala"}
	replyClipboardFailed = reply{"Clipboard operation failed", "Clipboard operation fail aachu"}

	replySystemFailed  = reply{"Failed to execute system command", "System command execute aagala"}
	replyUnknownAction = reply{"Unknown system action: %s", "%s theriyala"}

	replyCodeGenerated = reply{
		"Code generated! Say 'copy code and paste in vscode' to use it.",
		"Code generate pannitten! 'Copy code and paste in vscode' sollungal.",
	}
	replyChatUnsure = reply{"I'm not sure how to help with that", "Adhu pathi enakku theriyala"}
)

// systemAnnouncements are spoken before a power command runs. The destructive
// ones promise the grace period baked into the registry argv.
var systemAnnouncements = map[string]reply{
	"shutdown":  {"Shutting down computer in 5 seconds", "5 seconds-la computer shutdown aagum"},
	"restart":   {"Restarting computer in 5 seconds", "5 seconds-la computer restart aagum"},
	"reboot":    {"Rebooting computer in 5 seconds", "5 seconds-la computer reboot aagum"},
	"sleep":     {"Putting computer to sleep", "Computer-a sleep mode-la pottu tharren"},
	"hibernate": {"Hibernating computer", "Computer-a hibernate panren"},
	"logout":    {"Logging out", "Logout panren"},
	"lock":      {"Locking computer", "Computer-a lock panren"},
}

// greetingReplies is the small-talk table checked before any model call.
// First match wins.
var greetingReplies = []struct {
	keywords []string
	r        reply
}{
	{[]string{"vanakkam", "hai", "hello"}, reply{"Hello! How can I help you?", "Vanakkam! Enna help venum?"}},
	{[]string{"how are you", "epdi irukka"}, reply{"I'm doing well, thank you!", "Naan nalla iruken, nandri!"}},
	{[]string{"thank you", "thanks", "nandri"}, reply{"You're welcome! Happy to help!", "Paravala! Vera enna help venum?"}},
}

// Status lines pushed to the dashboards.
const (
	statusProcessing   = "🤖 Processing with AI..."
	statusCompleted    = "✅ Command completed"
	statusIdle         = "🎤 Listening for wake word or command..."
	statusWakeDetected = "🎯 Wake word detected! Listening for command..."
	statusListenOn     = "🎙️ Listening enabled"
	statusListenOff    = "🔇 Listening paused"
)

var languageNames = map[string]string{
	"en": "English",
	"ta": "Tamil",
}
