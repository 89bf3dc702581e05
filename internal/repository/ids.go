package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewEntityID generates an identifier of the form <prefix>_<millis>_<rand>.
// The prefix namespaces generated ids away from the bare numeric seed ids,
// so a fresh id can never collide with a fixture.
func NewEntityID(prefix string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), suffix)
}
