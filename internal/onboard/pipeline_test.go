package onboard

import (
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPipeline_unreachable_short_circuits(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	inv := newFakeInventory()
	p := NewPipeline(inv, DefaultConfig(), Credentials{Username: "admin", Password: "secret"}, zap.NewNop())
	p.detector.sshShowVersion = func(context.Context, Request) (string, error) {
		t.Error("platform detection ran against an unreachable device")
		return "", nil
	}

	_, err = p.Run(context.Background(), Request{
		IPAddress: "127.0.0.1",
		Port:      port,
		Site:      "dc1",
		Timeout:   2 * time.Second,
	})
	if err == nil {
		t.Fatal("expected error for unreachable device")
	}
	if got := ReasonOf(err); got != ReasonConnect {
		t.Errorf("reason = %s, want %s", got, ReasonConnect)
	}
	if inv.creations != 0 {
		t.Errorf("inventory creations = %d, want 0 after probe failure", inv.creations)
	}
}
