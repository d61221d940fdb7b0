package adapter

import "time"

// Clock abstracts wall-clock access so matching is testable without real time.
type Clock interface {
	NowUTC() time.Time
}
