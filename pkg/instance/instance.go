package instance

import (
	"os"

	"github.com/JGP1992/theitaliancorner-sub001/pkg/env"
)

// GetID identifies this process in cron lock values and logs: GELATO_INSTANCE_ID,
// then the hostname, then a fixed fallback.
func GetID() string {
	if id := env.Get("GELATO_INSTANCE_ID", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "gelato-0"
}
