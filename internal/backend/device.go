package backend

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"passgate/cli/internal/xdg"
)

// deviceID returns the stable installation identifier, creating it on first
// use. It is sent on every request so the service can distinguish devices
// without any cross-device state.
func deviceID() string {
	dir, err := xdg.StateDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "device_id")

	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id
		}
	}

	id := uuid.NewString()
	_ = os.WriteFile(path, []byte(id), 0o600)
	return id
}
