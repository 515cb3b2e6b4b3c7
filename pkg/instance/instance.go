package instance

import "os"

// GetID returns the process instance identifier used in startup logs.
// BOREALIS_INSTANCE_ID wins over the platform-provided DYNO.
func GetID() string {
	if id := os.Getenv("BOREALIS_INSTANCE_ID"); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	return "local"
}
