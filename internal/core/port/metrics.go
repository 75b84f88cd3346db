package port

import (
	"context"
	"time"
)

// OperationRecorder receives one sample per completed service operation.
type OperationRecorder interface {
	RecordOperation(ctx context.Context, entity string, operation string, duration time.Duration, err error)
}
