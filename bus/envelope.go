package bus

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Source identifies every event emitted by this system.
const Source = "big-mouth"

type DetailType string

const (
	DetailTypeOrderPlaced        DetailType = "order_placed"
	DetailTypeRestaurantNotified DetailType = "restaurant_notified"
)

// Valid reports whether the detail type belongs to the closed set the system routes on.
func (d DetailType) Valid() bool {
	switch d {
	case DetailTypeOrderPlaced, DetailTypeRestaurantNotified:
		return true
	}
	return false
}

// Envelope is the unit of asynchronous communication on the event bus.
type Envelope struct {
	ID         string          `json:"id"`
	Source     string          `json:"source"`
	DetailType DetailType      `json:"detail-type"`
	Detail     json.RawMessage `json:"detail"`
	Time       time.Time       `json:"time"`
}

// OrderDetail is the payload of both order_placed and restaurant_notified events.
type OrderDetail struct {
	OrderID        OrderID `json:"orderId"`
	RestaurantName string  `json:"restaurantName"`
}

// OrderID accepts both the string and the numeric JSON form of an order id.
type OrderID string

func (id *OrderID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = OrderID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("orderId must be a string or a number: %w", err)
	}
	*id = OrderID(n.String())
	return nil
}

// NewEnvelope wraps detail into a fresh envelope with a unique delivery id.
func NewEnvelope(detailType DetailType, detail any) (*Envelope, error) {
	if !detailType.Valid() {
		return nil, fmt.Errorf("unknown detail type %q", detailType)
	}

	raw, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("marshal %s detail: %w", detailType, err)
	}

	return &Envelope{
		ID:         uuid.NewString(),
		Source:     Source,
		DetailType: detailType,
		Detail:     raw,
		Time:       time.Now().UTC(),
	}, nil
}

// DecodeDetail unmarshals the envelope detail into v.
func (e *Envelope) DecodeDetail(v any) error {
	if len(e.Detail) == 0 {
		return fmt.Errorf("envelope %s has no detail", e.ID)
	}
	if err := json.Unmarshal(e.Detail, v); err != nil {
		return fmt.Errorf("decode %s detail: %w", e.DetailType, err)
	}
	return nil
}
