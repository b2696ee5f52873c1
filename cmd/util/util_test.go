package util

import (
	"strings"
	"testing"

	"github.com/ValentinKolb/tKV/lib/common"
	"github.com/ValentinKolb/tKV/lib/value"
)

func TestWrapString(t *testing.T) {
	text := strings.Repeat("word ", 40)
	for _, line := range strings.Split(WrapString(text), "\n") {
		if len(line) > Wrap {
			t.Errorf("line exceeds %d characters: %q", Wrap, line)
		}
	}

	if WrapString("  short   text ") != "short text" {
		t.Errorf("WrapString did not normalize whitespace: %q", WrapString("  short   text "))
	}

	long := strings.Repeat("x", Wrap+10)
	if WrapString(long) != long {
		t.Errorf("WrapString must not split single words")
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(&common.Config{Shards: 2})

	if err := s.Set("k", value.FromInt(1)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	info, err := s.GetDBInfo()
	if err != nil {
		t.Fatalf("GetDBInfo() error: %v", err)
	}
	if info.Entries != 1 {
		t.Errorf("expected 1 entry, got %d", info.Entries)
	}
}
