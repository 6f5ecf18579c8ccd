package node

import (
	"net"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Node identifies the running bridge process in status payloads and health checks.
type Node struct {
	ID         string    `json:"id"`
	Hostname   string    `json:"hostname"`
	IPAddress  string    `json:"ip_address"`
	Version    string    `json:"version"`
	CommitHash string    `json:"commit_hash"`
	StartedAt  time.Time `json:"started_at"`
}

// Set at build time with -ldflags.
var (
	Version    = "development"
	CommitHash = "unknown"
)

var (
	current     Node
	currentOnce sync.Once
)

// GetNodeInfo returns the identity of this process. The id is generated once per process.
func GetNodeInfo() Node {
	currentOnce.Do(func() {
		current = Node{
			ID:         uuid.New().String(),
			Hostname:   hostname(),
			IPAddress:  outboundIPAddress(),
			Version:    Version,
			CommitHash: CommitHash,
			StartedAt:  time.Now(),
		}
	})
	return current
}

func (n Node) Uptime() time.Duration {
	return time.Since(n.StartedAt)
}

// ClientID builds a broker client id unique to this process.
func (n Node) ClientID(prefix string) string {
	return prefix + "-" + n.ID[:8]
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// outboundIPAddress picks the local address routed to the outside. No packet is sent.
func outboundIPAddress() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}
