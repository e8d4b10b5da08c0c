// Package format renders invoice numbers.
package format

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// InvoiceNumber renders the human-facing invoice number. The client id is
// zero-padded to at least four digits; seq restarts each calendar year and
// counts the client's invoices within it.
func InvoiceNumber(clientID snowflake.ID, year int, seq int64) string {
	return fmt.Sprintf("№%04d/%d/%d", clientID.Int64(), year, seq)
}
