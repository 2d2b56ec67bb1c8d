package cli

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/loomline/loomline/internal/tui"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestRunProbeFlagPrintsSummary(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("COLORTERM", "truecolor")

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"-probe"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("colors: truecolor")) {
		t.Fatalf("probe summary missing color line: %q", stdout.String())
	}
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"-no-such-flag"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2 for a bad flag, got %d", code)
	}
}

func TestRunReportsInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := dir + "/config.json"
	if err := writeFile(path, `{"historySize": "many"}`); err != nil {
		t.Fatal(err)
	}
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"-config", path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1 for invalid config, got %d", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("historySize")) {
		t.Fatalf("error should name the bad field: %q", stderr.String())
	}
}

func TestEchoResponderStreamsAndCompletes(t *testing.T) {
	t.Parallel()

	r := newEchoResponder()
	defer r.Close()
	r.Submit("hello world")

	var text string
	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-r.Events():
			if evt.Kind == tui.EventDone {
				if text != "You said:\n\nhello world " {
					t.Fatalf("unexpected echoed text %q", text)
				}
				return
			}
			text += evt.Text
		case <-deadline:
			t.Fatalf("responder never completed; got %q so far", text)
		}
	}
}

func TestEchoResponderStopsAfterClose(t *testing.T) {
	t.Parallel()

	r := newEchoResponder()
	r.Close()
	if r.emit(tui.Event{Kind: tui.EventChunk, Text: "x"}) {
		t.Fatalf("emit after close should report failure")
	}
}
