package order

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"orders/internal/pkg/errs"
)

// Reserved top-level keys of the details document. Every other key belongs to the caller.
const (
	DetailsOrderIDKey        = "order_id"
	DetailsStatusesKey       = "statuses"
	DetailsLastStatusNameKey = "last_status_name"
)

// Details is the semi-structured document stored with every order.
// The service owns order_id, statuses and last_status_name; all other top-level
// fields are kept as raw JSON and written back unchanged.
type Details struct {
	orderID        string
	statuses       []StatusRecord
	lastStatusName Status
	fields         map[string]json.RawMessage
}

// ParseDetails decodes a stored details document. It does not check the history
// invariants; RestoreOrder does that.
func ParseDetails(data []byte) (Details, error) {
	var d Details
	if err := json.Unmarshal(data, &d); err != nil {
		return Details{}, errs.NewValueIsInvalidErrorWithCause("details", err)
	}
	return d, nil
}

// newDetails keeps the caller fields and drops anything under a reserved key.
func newDetails(orderID string, fields map[string]json.RawMessage) Details {
	d := Details{
		orderID: orderID,
		fields:  make(map[string]json.RawMessage, len(fields)),
	}
	for k, v := range fields {
		if isReservedKey(k) {
			continue
		}
		d.fields[k] = cloneRaw(v)
	}
	return d
}

func (d Details) OrderID() string {
	return d.orderID
}

// Statuses returns a copy of the history in append order.
func (d Details) Statuses() []StatusRecord {
	out := make([]StatusRecord, len(d.statuses))
	copy(out, d.statuses)
	return out
}

func (d Details) LastStatusName() Status {
	return d.lastStatusName
}

// Field returns the raw JSON of a caller-supplied field.
func (d Details) Field(key string) (json.RawMessage, bool) {
	v, ok := d.fields[key]
	if !ok {
		return nil, false
	}
	return cloneRaw(v), true
}

// Fields returns a copy of all caller-supplied fields.
func (d Details) Fields() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(d.fields))
	for k, v := range d.fields {
		out[k] = cloneRaw(v)
	}
	return out
}

// withStatus returns a copy of d with record appended and the last status pointer moved.
func (d Details) withStatus(record StatusRecord) Details {
	statuses := make([]StatusRecord, len(d.statuses), len(d.statuses)+1)
	copy(statuses, d.statuses)
	return Details{
		orderID:        d.orderID,
		statuses:       append(statuses, record),
		lastStatusName: record.Name(),
		fields:         d.fields,
	}
}

func (d Details) validate() error {
	if len(d.statuses) == 0 {
		return errs.NewValueIsRequiredError("details.statuses")
	}
	last := d.statuses[len(d.statuses)-1].Name()
	if d.lastStatusName != last {
		return errs.NewValueIsInvalidErrorWithCause(
			"details.last_status_name",
			fmt.Errorf("%s does not match last status %s", d.lastStatusName, last),
		)
	}
	var err error
	for i, s := range d.statuses {
		if vErr := s.Name().Validate(); vErr != nil {
			err = errors.Join(err, fmt.Errorf("details.statuses[%d]: %w", i, vErr))
		}
	}
	return err
}

func (d Details) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(d.fields)+3)
	for k, v := range d.fields {
		doc[k] = v
	}
	statuses := d.statuses
	if statuses == nil {
		statuses = []StatusRecord{}
	}
	doc[DetailsOrderIDKey] = d.orderID
	doc[DetailsStatusesKey] = statuses
	if d.lastStatusName != Unknown {
		doc[DetailsLastStatusNameKey] = d.lastStatusName
	} else {
		doc[DetailsLastStatusNameKey] = nil
	}
	return json.Marshal(doc)
}

func (d *Details) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errs.NewValueIsRequiredError("details")
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := Details{fields: make(map[string]json.RawMessage, len(doc))}
	for k, v := range doc {
		switch k {
		case DetailsOrderIDKey:
			if err := unmarshalOptional(v, &out.orderID); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		case DetailsStatusesKey:
			if err := unmarshalOptional(v, &out.statuses); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		case DetailsLastStatusNameKey:
			if err := unmarshalOptional(v, &out.lastStatusName); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
		default:
			out.fields[k] = v
		}
	}
	*d = out
	return nil
}

func unmarshalOptional(raw json.RawMessage, target any) error {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, target)
}

func isReservedKey(key string) bool {
	return key == DetailsOrderIDKey || key == DetailsStatusesKey || key == DetailsLastStatusNameKey
}

func cloneRaw(v json.RawMessage) json.RawMessage {
	if v == nil {
		return nil
	}
	out := make(json.RawMessage, len(v))
	copy(out, v)
	return out
}
