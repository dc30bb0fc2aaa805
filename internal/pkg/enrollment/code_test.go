package enrollment

import (
	"strings"
	"testing"
)

func TestGenerate_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := generate(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	code, err := GenerateCode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != CodeLength {
		t.Fatalf("expected code length %d, got %d", CodeLength, len(code))
	}

	for i := 0; i < len(code); i++ {
		if strings.IndexByte(alphabet, code[i]) == -1 {
			t.Fatalf("code contains invalid character %q", code[i])
		}
	}
	if !ValidCode(code) {
		t.Fatalf("generated code %q not accepted by ValidCode", code)
	}
}

func TestGenerateCode_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[code]; exists {
			t.Fatalf("duplicate code generated in small batch: %s", code)
		}
		seen[code] = struct{}{}
	}
}

func TestValidCode(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"ABC1234567":  true,
		"abc1234567":  false,
		"ABC123456":   false,
		"ABC12345678": false,
		"ABC-234567":  false,
		"":            false,
	}
	for in, want := range cases {
		if got := ValidCode(in); got != want {
			t.Fatalf("ValidCode(%q) = %v, want %v", in, got, want)
		}
	}
}
