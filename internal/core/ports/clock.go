package ports

import "time"

// Clock supplies the current time to the use cases.
type Clock interface {
	Now() time.Time
}
