package order

import (
	"strings"

	"orders/internal/pkg/errs"
)

// Origin names the actor a status transition is attributed to.
type Origin string

// OriginStore is the only origin produced by the service itself.
const OriginStore Origin = "STORE"

// NewOrigin trims value and rejects blank input.
func NewOrigin(value string) (Origin, error) {
	o := Origin(strings.TrimSpace(value))
	if err := o.Validate(); err != nil {
		return "", err
	}
	return o, nil
}

func (o Origin) Validate() error {
	if strings.TrimSpace(string(o)) == "" {
		return errs.NewValueIsRequiredError("origin")
	}
	return nil
}

func (o Origin) String() string {
	return string(o)
}
