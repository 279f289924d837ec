package metrics

import "time"

// Recorder receives domain events worth counting. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordAllocation(duration time.Duration, recurring int, oneOff int)
	RecordCompletion(points int)
}
