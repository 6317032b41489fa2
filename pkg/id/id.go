package id

import (
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// GenTraceID new trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Modify derives a deterministic trace id for a follow-up leg of the same
// action.
func Modify(traceID, action string) string {
	return foxuuid.Modify(traceID, action)
}
