package triage

import (
	"fmt"
	"hash/fnv"
)

// TicketID derives a deterministic id from the normalized incident text.
// FNV-1a is stable across runs and platforms, so identical text always
// yields the identical id.
func TicketID(text string) string {
	h := fnv.New32a()
	h.Write([]byte(text))
	return fmt.Sprintf("INC-%08d", h.Sum32()%100000000)
}
