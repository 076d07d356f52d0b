package instance

import "os"

// GetID returns the process instance identifier. Dyno names win over the explicit
// override so logs line up with the platform's own.
func GetID() string {
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if id := os.Getenv("INSIGHTS_INSTANCE_ID"); id != "" {
		return id
	}
	return "local"
}
