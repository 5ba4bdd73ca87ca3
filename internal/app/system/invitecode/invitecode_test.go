package invitecode_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/studyhub/internal/app/system/invitecode"
)

func TestNew_Format(t *testing.T) {
	code := invitecode.New()
	if len(code) != invitecode.Length {
		t.Fatalf("length: got %d, want %d", len(code), invitecode.Length)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("code %q is not uppercase", code)
	}
	for _, c := range code {
		if strings.ContainsRune("0O1I", c) {
			t.Errorf("code %q contains ambiguous character %q", code, c)
		}
	}
}

func TestNew_Varies(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[invitecode.New()] = true
	}
	// 50 draws from a 32^6 space should essentially never collide.
	if len(seen) < 45 {
		t.Errorf("expected distinct codes, got %d unique of 50", len(seen))
	}
}
