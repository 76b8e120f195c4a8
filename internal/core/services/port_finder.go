package services

import (
	"fmt"
	"net"
	"strconv"

	"github.com/custodia-labs/lenk/internal/core/domain"
)

// portScan is how many ports above the configured one are tried.
const portScan = 20

// FindAvailableAddr returns addr if it can be bound, otherwise the first
// free port above it on the same host.
func FindAvailableAddr(addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("%w: listen address %q: %v", domain.ErrInvalidInput, addr, err)
	}
	start, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("%w: listen port %q", domain.ErrInvalidInput, portStr)
	}
	if start == 0 {
		return addr, nil
	}

	for port := start; port <= start+portScan && port <= 65535; port++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port))
		listener, err := net.Listen("tcp", candidate)
		if err == nil {
			listener.Close()
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available port in range %d-%d", start, start+portScan)
}
