package tui

import "strings"

var networkErrorMarkers = []string{
	"connection refused",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

// humanizeServerUnavailableError collapses transport-level failures into a
// single readable message; everything else passes through unchanged.
func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	for _, marker := range networkErrorMarkers {
		if strings.Contains(s, marker) {
			return "server is unreachable, check the network and the server address"
		}
	}

	return err.Error()
}
