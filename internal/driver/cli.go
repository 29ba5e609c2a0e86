package driver

import (
	"context"
	"fmt"
)

// cliDriver implements Driver over an SSH CLI session. Each platform
// supplies its command set and output parsers; the session handling is
// shared.
type cliDriver struct {
	conn *sshConn

	factsCmds   []string
	parseFacts  func(outputs []string) (*Facts, error)
	ifaceCmd    string
	parseIfaces func(output string) (InterfaceIPs, error)
}

func (d *cliDriver) Open(ctx context.Context) error {
	return d.conn.open(ctx)
}

func (d *cliDriver) Facts(ctx context.Context) (*Facts, error) {
	outputs := make([]string, 0, len(d.factsCmds))
	for _, cmd := range d.factsCmds {
		out, err := d.conn.run(ctx, cmd)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
	}
	facts, err := d.parseFacts(outputs)
	if err != nil {
		return nil, fmt.Errorf("parse facts: %w", err)
	}
	return facts, nil
}

func (d *cliDriver) InterfaceIPs(ctx context.Context) (InterfaceIPs, error) {
	out, err := d.conn.run(ctx, d.ifaceCmd)
	if err != nil {
		return nil, err
	}
	ips, err := d.parseIfaces(out)
	if err != nil {
		return nil, fmt.Errorf("parse interface addresses: %w", err)
	}
	return ips, nil
}

func (d *cliDriver) Close() error {
	return d.conn.close()
}
