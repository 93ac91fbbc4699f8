package instance

import (
	"os"

	"github.com/angelmondragon/partsdesk-backend/pkg/env"
)

// GetID names the running process in logs. PARTSDESK_INSTANCE_ID wins over
// the platform's DYNO; local runs report "local".
func GetID() string {
	if id := env.Get("INSTANCE_ID", ""); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
