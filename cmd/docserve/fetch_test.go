package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/adeilh/docserve/httpx"
	"github.com/adeilh/docserve/internal/document"
	"github.com/adeilh/docserve/internal/server"
	"github.com/adeilh/docserve/internal/tracking"
)

func runFetchAgainst(t *testing.T, base string, args ...string) (string, error) {
	t.Helper()
	fetchAddr = base
	fetchHead = false
	t.Cleanup(func() { fetchAddr, fetchHead = "http://127.0.0.1:3000", false })

	var out bytes.Buffer
	fetchCmd.SetOut(&out)
	fetchCmd.SetContext(context.Background())
	if err := fetchCmd.ParseFlags(args[1:]); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	err := runFetch(fetchCmd, args[:1])
	return out.String(), err
}

func TestFetchPrintsDocument(t *testing.T) {
	gw := document.GatewayFunc(func(_ context.Context, id string) document.Outcome {
		if id == "greeting" {
			return document.Found("hi there")
		}
		return document.NotFound()
	})
	ts := httpx.NewServerTestServer(server.New(server.Options{Gateway: gw, Reporter: tracking.Nop()}))
	defer ts.Close()

	out, err := runFetchAgainst(t, ts.BaseURL(), "greeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "200 OK") || !strings.Contains(out, "hi there") {
		t.Fatalf("unexpected output: %q", out)
	}
	if !strings.Contains(out, "ETag: "+httpx.EntityTag([]byte("hi there"))) {
		t.Fatalf("missing ETag line: %q", out)
	}

	out, err = runFetchAgainst(t, ts.BaseURL(), "absent")
	if err == nil {
		t.Fatalf("expected an error for a missing document")
	}
	if !strings.Contains(out, "404") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFetchHead(t *testing.T) {
	ts := httpx.NewServerTestServer(server.New(server.Options{
		Gateway:  document.GatewayFunc(func(context.Context, string) document.Outcome { return document.NotFound() }),
		Reporter: tracking.Nop(),
	}))
	defer ts.Close()

	out, err := runFetchAgainst(t, ts.BaseURL(), "anything", "--head")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "204") {
		t.Fatalf("unexpected output: %q", out)
	}
}
