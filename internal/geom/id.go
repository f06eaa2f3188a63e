package geom

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

var idCounter uint64

// NewID creates a unique identifier with the given prefix. IDs combine a
// timestamp with a process-wide counter so they stay unique even when
// many widgets are created within the same nanosecond.
func NewID(prefix string) string {
	n := atomic.AddUint64(&idCounter, 1)
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%s-%04x", sanitizeID(prefix), time.Now().Format("150405.000"), n&0xffff)
}

// sanitizeID makes a prefix safe for use in persistence keys and file paths.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		" ", "_",
		".", "_",
	)
	return replacer.Replace(strings.TrimSpace(s))
}
