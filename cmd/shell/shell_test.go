package shell

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/tKV/cmd/util"
	"github.com/ValentinKolb/tKV/lib/command"
	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/store"
)

func newTestStore() store.IStore {
	return util.NewStore(&common.Config{Shards: 2})
}

func TestRun(t *testing.T) {
	input := strings.Join([]string{
		"SET age int 42",
		"GET age",
		"",
		"SET name str Ada Lovelace",
		"GET name",
		"SET broken int x",
		"NOPE",
		"SET",
		"GET age",
	}, "\n")

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, newTestStore(), command.NewProcessor(), "")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	expected := strings.Join([]string{
		"SET successful",
		"age: 42",
		"SET successful",
		"name: Ada Lovelace",
		"Invalid integer value",
		"Unknown command",
		"Usage: SET <key> <type> <value>",
		"Types: str, int, float, bool",
		"age: 42",
	}, "\n") + "\n"

	if out.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out.String(), expected)
	}
}

func TestRunPrompt(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("GET k\n"), &out, newTestStore(), command.NewProcessor(), "> ")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.String() != "> Key not found\n> " {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	reader, writer := io.Pipe()
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	var out bytes.Buffer

	go func() {
		done <- Run(ctx, reader, &out, newTestStore(), command.NewProcessor(), "")
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() returned error after cancel: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run() did not return after the context was cancelled")
	}
}

func TestRunLongLine(t *testing.T) {
	long := strings.Repeat("a", 200*1024)
	input := "SET k str " + long + "\nGET k\n"

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, newTestStore(), command.NewProcessor(), "")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.HasSuffix(out.String(), "k: "+long+"\n") {
		t.Errorf("long value was not stored completely")
	}
}

func TestRunVeryLongLine(t *testing.T) {
	big := strings.Repeat("x", 2*1024*1024)
	input := "SET a int 1\nSET big str " + big + "\nGET a\nGET big\n"

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, newTestStore(), command.NewProcessor(), "")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	expected := "SET successful\nSET successful\na: 1\nbig: " + big + "\n"
	if out.String() != expected {
		t.Errorf("session did not survive a %d byte line (output has %d bytes)", len(big), out.Len())
	}
}

func TestRunLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("SET k bool true\r\nGET k"), &out, newTestStore(), command.NewProcessor(), "")
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.String() != "SET successful\nk: true\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestWriteMetrics(t *testing.T) {
	s := newTestStore()
	_ = Run(context.Background(), strings.NewReader("SET a int 1\nGET a\n"), io.Discard, s, command.NewProcessor(), "")

	path := filepath.Join(t.TempDir(), "metrics.txt")
	if err := writeMetrics(s, path); err != nil {
		t.Fatalf("writeMetrics() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read metrics file: %v", err)
	}
	if !strings.Contains(string(data), `tkv_store_operations_total{op="get"} 1`) {
		t.Errorf("metrics file does not contain the get counter:\n%s", data)
	}
}
