package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsLuna reports whether s passes the Luhn checksum. Withdrawal confirm
// runs it on card-number payout destinations before any ledger write.
func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
