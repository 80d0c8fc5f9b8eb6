package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_Dispatch(t *testing.T) {
	var placed, notified int
	errBoom := errors.New("boom")

	router := NewRouter().
		Handle(Source, DetailTypeOrderPlaced, func(ctx context.Context, env *Envelope) error {
			placed++
			return nil
		}).
		Handle(Source, DetailTypeRestaurantNotified, func(ctx context.Context, env *Envelope) error {
			notified++
			return errBoom
		})

	testCases := []struct {
		name             string
		env              *Envelope
		expectedErr      error
		expectedPlaced   int
		expectedNotified int
	}{
		{
			name:           "routes_order_placed",
			env:            &Envelope{Source: Source, DetailType: DetailTypeOrderPlaced},
			expectedPlaced: 1,
		},
		{
			name:             "propagates_handler_error",
			env:              &Envelope{Source: Source, DetailType: DetailTypeRestaurantNotified},
			expectedErr:      errBoom,
			expectedPlaced:   1,
			expectedNotified: 1,
		},
		{
			name:             "ignores_foreign_source",
			env:              &Envelope{Source: "somebody-else", DetailType: DetailTypeOrderPlaced},
			expectedPlaced:   1,
			expectedNotified: 1,
		},
		{
			name:             "ignores_unknown_detail_type",
			env:              &Envelope{Source: Source, DetailType: "order_cancelled"},
			expectedPlaced:   1,
			expectedNotified: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := router.Dispatch(context.Background(), tc.env)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, tc.expectedPlaced, placed)
			assert.Equal(t, tc.expectedNotified, notified)
		})
	}
}

func TestRouter_DuplicateRoutePanics(t *testing.T) {
	noop := func(ctx context.Context, env *Envelope) error { return nil }
	router := NewRouter().Handle(Source, DetailTypeOrderPlaced, noop)

	assert.Panics(t, func() {
		router.Handle(Source, DetailTypeOrderPlaced, noop)
	})
}
