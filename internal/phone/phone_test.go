package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "77011234567", "77011234567"},
		{"trunk prefix", "87011234567", "77011234567"},
		{"bare ten digits", "7011234567", "77011234567"},
		{"formatted with punctuation", "+7 (701) 123-45-67", "77011234567"},
		{"trunk with punctuation", "8 (701) 123-45-67", "77011234567"},
		{"short number kept as digits", "12345", "12345"},
		{"empty", "", ""},
		{"letters only", "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"87011234567", "+77011234567", "7011234567", "12345"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("87011234567", "+7 701 123 45 67") {
		t.Fatal("expected trunk and international forms to match")
	}
	if Equal("", "") {
		t.Fatal("empty numbers must not match each other")
	}
	if Equal("77011234567", "77011234568") {
		t.Fatal("different numbers must not match")
	}
}

func TestLooseEqual(t *testing.T) {
	if !LooseEqual("77011234567", "87011234567") {
		t.Fatal("expected loose match on trailing digits")
	}
	if !LooseEqual("7011234567", "77011234567") {
		t.Fatal("expected ten-digit form to loose-match canonical form")
	}
	if LooseEqual("", "77011234567") {
		t.Fatal("empty input must not loose-match")
	}
}

func TestLast10(t *testing.T) {
	if got := Last10("+7 (701) 123-45-67"); got != "7011234567" {
		t.Fatalf("Last10 = %q", got)
	}
	if got := Last10("12345"); got != "12345" {
		t.Fatalf("short input should pass through, got %q", got)
	}
}
