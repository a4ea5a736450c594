package persistence

import (
	"os"
	"time"
)

const DefaultHealthcheckInterval = 3 * time.Second
const DefaultRetryInterval = 3 * time.Second

// getAppName returns the name reported to backing services in
// connection metadata, falling back to the hostname when the caller
// didn't set one
func getAppName(appName string) string {
	if appName != "" {
		return appName
	}
	hostname, err := os.Hostname()
	if err != nil {
		return "dontverifyme"
	}
	return hostname
}
