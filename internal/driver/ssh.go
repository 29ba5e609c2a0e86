package driver

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"
)

// sshConn manages a password-authenticated SSH connection to a device
// and runs one command per session, which is what most network operating
// systems expect from automation clients.
type sshConn struct {
	target Target
	client *ssh.Client

	// dial is the function used to establish SSH connections.
	// Defaults to ssh.Dial; overridden in tests.
	dial func(network, addr string, config *ssh.ClientConfig) (*ssh.Client, error)
}

func newSSHConn(t Target) *sshConn {
	return &sshConn{target: t}
}

func (c *sshConn) open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	timeout := c.target.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	port := c.target.Port
	if port == 0 {
		port = 22
	}

	cfg := &ssh.ClientConfig{
		User: c.target.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(c.target.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(), //nolint:gosec // G106: onboarding targets are operator-supplied
		Timeout:         timeout,
	}

	dial := c.dial
	if dial == nil {
		dial = ssh.Dial
	}

	addr := net.JoinHostPort(c.target.Host, strconv.Itoa(port))
	client, err := dial("tcp", addr, cfg)
	if err != nil {
		if isAuthError(err) {
			return fmt.Errorf("%w: ssh %s: %v", ErrAuth, addr, err)
		}
		return fmt.Errorf("ssh dial %s: %w", addr, err)
	}
	c.client = client
	return nil
}

// run executes a single command in a fresh session and returns its output.
func (c *sshConn) run(ctx context.Context, cmd string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.client == nil {
		return "", fmt.Errorf("%w: session not open", ErrCommand)
	}

	session, err := c.client.NewSession()
	if err != nil {
		return "", fmt.Errorf("%w: new session: %v", ErrCommand, err)
	}
	defer session.Close()

	out, err := session.Output(cmd)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrCommand, cmd, err)
	}
	return string(out), nil
}

func (c *sshConn) close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// isAuthError distinguishes a credential rejection from transport-level
// failures. x/crypto/ssh does not expose a typed error for this.
func isAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unable to authenticate") ||
		strings.Contains(msg, "no supported methods remain")
}
