// Package adapter defines the ports the use cases depend on. Implementations
// live in the integration layer.
package adapter

import "time"

// Clock supplies the current time to use cases so date math can be tested deterministically.
type Clock interface {
	Now() time.Time
}
