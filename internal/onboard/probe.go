package onboard

import (
	"context"
	"net"
	"strconv"
	"time"
)

// CheckReachability verifies the device accepts TCP connections at
// ip:port within timeout. The connection is closed immediately; later
// stages open their own sessions. Any dial failure is fail-connect.
func CheckReachability(ctx context.Context, ip string, port int, timeout time.Duration) error {
	target := net.JoinHostPort(ip, strconv.Itoa(port))

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", target)
	if err != nil {
		return WrapErr(ReasonConnect, err, "device unreachable: %s", target)
	}
	conn.Close()
	return nil
}
