// internal/utils/numbers.go
package utils

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Unambiguous uppercase alphabet for human-readable reference numbers;
// 0/O and 1/I are excluded.
const referenceAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// GenerateApplicationNumber returns a tracking number like VAT-2026-K7M2Q9RX.
func GenerateApplicationNumber() string {
	return fmt.Sprintf("VAT-%d-%s", time.Now().Year(), gonanoid.MustGenerate(referenceAlphabet, 8))
}

// GenerateLicenseNumber returns a license number like VCL-2026-P4T8W2ZC.
func GenerateLicenseNumber() string {
	return fmt.Sprintf("VCL-%d-%s", time.Now().Year(), gonanoid.MustGenerate(referenceAlphabet, 8))
}
