package service

import (
	"context"
	"testing"

	"ads-inventory-ws/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventStampsServerTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "10000000001")

	ev, err := f.events.CreateEvent(ctx, &DateEventRequest{
		AdsID: "10000000001", EventType: model.EventAudited, EventDate: strPtr("2026-09-30"), Note: "annual audit",
	}, actor)
	require.NoError(t, err)
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, "2026-09-30", ev.EventDate.Format(dateLayout))

	got, err := f.events.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EventAudited, got.EventType)

	p, err := f.products.GetProduct(ctx, "10000000001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, p.Status)
}

func TestCreateEventValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "10000000001")

	_, err := f.events.CreateEvent(ctx, &DateEventRequest{AdsID: "10000000001", EventType: "LOST"}, actor)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.events.CreateEvent(ctx, &DateEventRequest{AdsID: "10000000009", EventType: model.EventAudited}, actor)
	assert.ErrorIs(t, err, ErrProductNotFound)

	missing := uint(42)
	_, err = f.events.CreateEvent(ctx, &DateEventRequest{AdsID: "10000000001", EventType: model.EventAudited, ClientID: &missing}, actor)
	assert.ErrorIs(t, err, ErrClientNotFound)

	_, err = f.events.GetEvent(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
