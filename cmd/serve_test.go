package cmd

import (
	"context"
	"net"
	"strings"
	"testing"
)

func TestServe_StopsWithContext(t *testing.T) {
	env := testDeps(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	serve(ctx, "127.0.0.1:0")

	env.assertNoExit(t)
	out := env.stdout.String()
	if !strings.Contains(out, "Insight proxy listening on 127.0.0.1:") {
		t.Errorf("expected listening message, got: %s", out)
	}
	if !strings.Contains(out, "Insight proxy stopped") {
		t.Errorf("expected stopped message, got: %s", out)
	}
	if !strings.Contains(env.stderr.String(), "No insight API key configured") {
		t.Errorf("expected API key warning, got: %s", env.stderr.String())
	}
}

func TestServe_ListenError(t *testing.T) {
	env := testDeps(t)

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer taken.Close()

	addr := taken.Addr().String()
	serve(context.Background(), addr)

	env.assertExit(t, 1)
	if !strings.Contains(env.stderr.String(), "Failed to listen on "+addr) {
		t.Errorf("expected listen error, got: %s", env.stderr.String())
	}
}
