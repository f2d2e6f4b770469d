package registry

import (
	"os"
	"path/filepath"
	"strings"
)

// discoverPath enumerates executables on PATH once at startup. Earlier
// directories win name collisions, matching how the shell would resolve the
// command.
func discoverPath(goos, pathEnv string) map[string]string {
	apps := make(map[string]string)

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			name := entry.Name()
			if goos == "windows" {
				ext := filepath.Ext(name)
				if !strings.EqualFold(ext, ".exe") {
					continue
				}
				name = strings.TrimSuffix(name, ext)
			} else {
				info, err := entry.Info()
				if err != nil || info.Mode()&0o111 == 0 {
					continue
				}
			}

			clean := CleanName(name)
			if clean == "" {
				continue
			}
			if _, seen := apps[clean]; !seen {
				apps[clean] = filepath.Join(dir, entry.Name())
			}
		}
	}

	return apps
}
