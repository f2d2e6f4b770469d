// Pluto control CLI - drive a running pluto daemon over its REST API
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	cli "github.com/spf13/pflag"

	"github.com/plutovoice/go-pluto/internal/config"
	"github.com/plutovoice/go-pluto/internal/httpc"
	"github.com/plutovoice/go-pluto/pkg/protocol"
)

func main() {
	addr := cli.StringP("addr", "a", config.DaemonURL(), "Daemon base URL")
	cli.Parse()

	args := cli.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "status":
		err = showStatus(*addr)
	case "say":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		err = sendCommand(*addr, strings.Join(args[1:], " "))
	case "listen":
		if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
			usage()
			os.Exit(2)
		}
		err = setListening(*addr, args[1] == "on")
	case "lang":
		if len(args) != 2 {
			usage()
			os.Exit(2)
		}
		err = setLanguage(*addr, args[1])
	case "tail":
		err = tailTranscript(*addr)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "pluto-ctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: pluto-ctl [flags] <command>

Commands:
  status            Show daemon state
  say <text>        Send a command as if spoken
  listen on|off     Pause or resume the microphone loop
  lang en|ta        Switch the response language
  tail              Stream the live transcript

Flags:`)
	cli.PrintDefaults()
}

// showStatus fetches and prints the daemon state snapshot.
func showStatus(base string) error {
	resp, err := httpc.Client.Get(base + "/api/status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var st protocol.StateData
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return err
	}

	fmt.Printf("Listening:      %v\n", st.Listening)
	fmt.Printf("Language:       %s\n", st.Language)
	fmt.Printf("Online:         %v\n", st.Online)
	if len(st.AvailableModels) > 0 {
		fmt.Printf("Models:         %s\n", strings.Join(st.AvailableModels, ", "))
	}
	if len(st.CapabilityCounts) > 0 {
		kinds := make([]string, 0, len(st.CapabilityCounts))
		for k := range st.CapabilityCounts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		parts := make([]string, 0, len(kinds))
		for _, k := range kinds {
			parts = append(parts, fmt.Sprintf("%s=%d", k, st.CapabilityCounts[k]))
		}
		fmt.Printf("Capabilities:   %s\n", strings.Join(parts, " "))
	}
	fmt.Printf("Generated code: %v\n", st.HasGeneratedCode)
	return nil
}

// sendCommand submits text exactly as if the wake word had been heard.
// The spoken reply surfaces on the daemon side and in the transcript.
func sendCommand(base, text string) error {
	return postJSON(base+"/api/command", map[string]string{"text": text})
}

func setListening(base string, enabled bool) error {
	return postJSON(base+"/api/listening", map[string]bool{"enabled": enabled})
}

func setLanguage(base, language string) error {
	return postJSON(base+"/api/language", map[string]string{"language": language})
}

// tailTranscript streams transcript lines over the daemon's log websocket
// until interrupted. The backlog is replayed first.
func tailTranscript(base string) error {
	wsURL := strings.Replace(base, "http", "ws", 1) + "/ws/logs"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		msg, err := protocol.ParseMessage(data)
		if err != nil || msg.Type != protocol.TypeLog {
			continue
		}
		entry, err := msg.GetLogData()
		if err != nil {
			continue
		}
		ts := time.UnixMilli(msg.Timestamp).Format("15:04:05")
		fmt.Printf("%s [%s] %s\n", ts, entry.Role, entry.Data)
	}
}

func postJSON(url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := httpc.Client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func apiError(resp *http.Response) error {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Error != "" {
		return fmt.Errorf("daemon: %s", e.Error)
	}
	return fmt.Errorf("daemon returned %s", resp.Status)
}
