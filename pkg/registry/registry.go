// Package registry resolves spoken application and service names to
// actionable targets: local executables, web URLs, system power commands,
// and media platforms. The catalog is populated once at startup from static
// tables plus a one-time PATH scan and is read-only afterward. Resolution
// precedence is fixed: system commands, manual paths, web apps, media
// platforms, discovered executables, then substring match over discovered
// names.
package registry

import (
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"
)

// Kind classifies what a resolved capability actually is.
type Kind string

const (
	KindLocal  Kind = "local_executable"
	KindWeb    Kind = "web_url"
	KindSystem Kind = "system_command"
	KindMedia  Kind = "media_platform"
)

// Capability is a resolved, launchable target. Target carries the path, URL,
// or platform name depending on Kind; Argv is the launch command for local
// executables and system commands.
type Capability struct {
	Name   string
	Kind   Kind
	Target string
	Argv   []string
}

// MediaPlatform describes one supported media service. AppLaunch names a
// desktop app to prefer over the browser; empty means browser only.
type MediaPlatform struct {
	Name      string
	BaseURL   string
	SearchURL string
	AppLaunch string
}

// Counts reports catalog sizes per capability source.
type Counts struct {
	Manual     int `json:"manual"`
	Web        int `json:"web"`
	System     int `json:"system"`
	Media      int `json:"media"`
	Discovered int `json:"discovered"`
}

// Registry holds the capability catalog. Not mutated after New.
type Registry struct {
	goos   string
	runner Runner
	logger *slog.Logger
	warmup time.Duration

	manual     map[string][]string
	web        map[string]string
	system     map[string][]string
	media      map[string]MediaPlatform
	discovered map[string]string
	processes  map[string]string
}

// New builds the registry for the current OS.
func New(opts ...Option) *Registry {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	r := &Registry{
		goos:   runtime.GOOS,
		runner: cfg.Runner,
		logger: cfg.Logger,
		warmup: cfg.WarmupDelay,

		system:    systemCommands(runtime.GOOS),
		manual:    manualCatalog(runtime.GOOS, exec.LookPath, fileExists),
		web:       webApps(),
		media:     mediaPlatforms(),
		processes: processNames(runtime.GOOS),
	}

	for name, argv := range cfg.ManualApps {
		if len(argv) > 0 {
			r.manual[CleanName(name)] = argv
		}
	}

	if cfg.Discover {
		r.discovered = discoverPath(r.goos, os.Getenv("PATH"))
	} else {
		r.discovered = map[string]string{}
	}

	r.logger.Info("capability registry ready",
		"manual", len(r.manual),
		"web", len(r.web),
		"system", len(r.system),
		"media", len(r.media),
		"discovered", len(r.discovered))

	return r
}

// Resolve maps a spoken name to a capability. The name is cleaned first, so
// "Spotify (x64)" and "spotify" resolve identically.
func (r *Registry) Resolve(name string) (Capability, bool) {
	clean := CleanName(name)
	if clean == "" {
		return Capability{}, false
	}

	if argv, ok := r.system[clean]; ok {
		return Capability{Name: clean, Kind: KindSystem, Target: clean, Argv: argv}, true
	}
	if argv, ok := r.manual[clean]; ok {
		return Capability{Name: clean, Kind: KindLocal, Target: argv[len(argv)-1], Argv: argv}, true
	}
	if url, ok := r.web[clean]; ok {
		return Capability{Name: clean, Kind: KindWeb, Target: url}, true
	}
	if _, ok := r.media[clean]; ok {
		return Capability{Name: clean, Kind: KindMedia, Target: clean}, true
	}
	if path, ok := r.discovered[clean]; ok {
		return Capability{Name: clean, Kind: KindLocal, Target: path, Argv: []string{path}}, true
	}

	// Partial match over discovered names, in sorted order so repeated
	// resolves agree.
	names := make([]string, 0, len(r.discovered))
	for k := range r.discovered {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if strings.Contains(k, clean) {
			path := r.discovered[k]
			return Capability{Name: k, Kind: KindLocal, Target: path, Argv: []string{path}}, true
		}
	}

	r.logger.Debug("capability not found", "name", clean)
	return Capability{}, false
}

// Platform returns the media platform entry for a name.
func (r *Registry) Platform(name string) (MediaPlatform, bool) {
	p, ok := r.media[CleanName(name)]
	return p, ok
}

// Counts returns catalog sizes for status reporting.
func (r *Registry) Counts() Counts {
	return Counts{
		Manual:     len(r.manual),
		Web:        len(r.web),
		System:     len(r.system),
		Media:      len(r.media),
		Discovered: len(r.discovered),
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
