package wallet

import (
	"strings"
	"testing"
)

func FuzzNormalizeMnemonicInput(f *testing.F) {
	f.Add("abandon about")
	f.Add("1. abandon\n2. about")
	f.Add("- a, b ,c")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		out := NormalizeMnemonicInput(input)
		if out != strings.TrimSpace(out) {
			t.Fatalf("untrimmed output %q", out)
		}
		if strings.Contains(out, "  ") || strings.Contains(out, ",") {
			t.Fatalf("uncollapsed output %q", out)
		}
		_ = ValidateMnemonic(input)
	})
}
