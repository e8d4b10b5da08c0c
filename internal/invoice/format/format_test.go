package format

import (
	"testing"

	"github.com/bwmarrin/snowflake"
)

func TestInvoiceNumber(t *testing.T) {
	cases := []struct {
		name     string
		clientID snowflake.ID
		year     int
		seq      int64
		want     string
	}{
		{"small id zero padded", snowflake.ID(7), 2025, 1, "№0007/2025/1"},
		{"four digit id unpadded", snowflake.ID(1234), 2025, 12, "№1234/2025/12"},
		{"large id keeps all digits", snowflake.ID(1879072951234567), 2026, 3, "№1879072951234567/2026/3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InvoiceNumber(tc.clientID, tc.year, tc.seq); got != tc.want {
				t.Fatalf("InvoiceNumber = %q, want %q", got, tc.want)
			}
		})
	}
}
