package registry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TerminateResult reports the outcome of a close request.
type TerminateResult int

const (
	TerminateClosed TerminateResult = iota
	TerminateNotRunning
	TerminateUnknown
)

func (t TerminateResult) String() string {
	switch t {
	case TerminateClosed:
		return "closed"
	case TerminateNotRunning:
		return "not_running"
	}
	return "unknown"
}

// Launch activates a capability: local executables start detached, web apps
// open in the browser, system commands run to completion, and media
// platforms prefer their desktop app when one is installed.
func (r *Registry) Launch(ctx context.Context, cap Capability) error {
	switch cap.Kind {
	case KindSystem:
		r.logger.Info("executing system command", "action", cap.Name)
		return r.runner.Run(ctx, cap.Argv[0], cap.Argv[1:]...)

	case KindWeb:
		return r.OpenURL(ctx, cap.Target)

	case KindMedia:
		p, ok := r.media[cap.Target]
		if !ok {
			return fmt.Errorf("registry: unknown media platform %q", cap.Target)
		}
		if p.AppLaunch != "" {
			if desktop, ok := r.Resolve(p.AppLaunch); ok && desktop.Kind == KindLocal {
				r.logger.Info("launching desktop media app", "platform", p.Name)
				return r.runner.Start(ctx, desktop.Argv[0], desktop.Argv[1:]...)
			}
		}
		return r.OpenURL(ctx, p.BaseURL)

	case KindLocal:
		r.logger.Info("launching app", "name", cap.Name, "target", cap.Target)
		return r.runner.Start(ctx, cap.Argv[0], cap.Argv[1:]...)

	default:
		return fmt.Errorf("registry: unknown capability kind %q", cap.Kind)
	}
}

// Terminate force-kills the process mapped to an app name. Kill failures are
// reported as not-running: on every supported OS the killer exits non-zero
// when no matching process exists.
func (r *Registry) Terminate(ctx context.Context, name string) TerminateResult {
	proc, ok := r.processes[CleanName(name)]
	if !ok {
		return TerminateUnknown
	}

	argv := killArgv(r.goos, proc)
	if err := r.runner.Run(ctx, argv[0], argv[1:]...); err != nil {
		r.logger.Debug("terminate reported failure", "process", proc, "error", err)
		return TerminateNotRunning
	}

	r.logger.Info("terminated app", "name", CleanName(name), "process", proc)
	return TerminateClosed
}

// PlayMedia opens a media search for the query. Spotify launches the desktop
// app first and gives it a warm-up pause before the web search lands; every
// platform ends with its search URL opening in the browser.
func (r *Registry) PlayMedia(ctx context.Context, query, platform string) error {
	p, ok := r.media[CleanName(platform)]
	if !ok {
		return fmt.Errorf("registry: unsupported media platform %q", platform)
	}

	searchURL := fmt.Sprintf(p.SearchURL, url.QueryEscape(strings.TrimSpace(query)))

	if p.AppLaunch != "" {
		if desktop, ok := r.Resolve(p.AppLaunch); ok && desktop.Kind == KindLocal {
			if err := r.runner.Start(ctx, desktop.Argv[0], desktop.Argv[1:]...); err != nil {
				r.logger.Warn("desktop media app failed to start", "platform", p.Name, "error", err)
			} else if r.warmup > 0 {
				select {
				case <-time.After(r.warmup):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}

	r.logger.Info("opening media search", "platform", p.Name, "url", searchURL)
	return r.OpenURL(ctx, searchURL)
}

// OpenURL opens a URL in the default browser.
func (r *Registry) OpenURL(ctx context.Context, rawURL string) error {
	argv := openURLArgv(r.goos, rawURL)
	return r.runner.Start(ctx, argv[0], argv[1:]...)
}

func openURLArgv(goos, rawURL string) []string {
	switch goos {
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", rawURL}
	case "darwin":
		return []string{"open", rawURL}
	default:
		return []string{"xdg-open", rawURL}
	}
}

func killArgv(goos, process string) []string {
	if goos == "windows" {
		return []string{"taskkill", "/f", "/im", process}
	}
	return []string{"pkill", "-x", process}
}
