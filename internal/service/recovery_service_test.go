package service

import (
	"context"
	"encoding/json"
	"testing"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"
	"ads-inventory-ws/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLifecycleLogsWithoutChangingStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.product(t, "10000000001")
	c := f.client(t, "lessee@acme.in")

	item, err := f.recovery.CreateRecoveryItem(ctx, &RecoveryRequest{
		OriginalAdsID: strPtr("10000000001"),
		ClientID:      &c.ID,
		Brand:         "Lenovo",
		Model:         "ThinkPad T480",
		Problem:       "keyboard dead",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.RecoveryReceived, item.Status)

	update := &RecoveryRequest{
		OriginalAdsID: strPtr("10000000001"),
		ClientID:      &c.ID,
		Brand:         "Lenovo",
		Model:         "ThinkPad T480",
		Problem:       "keyboard dead",
		RepairCost:    decimal.NewFromInt(1800),
		Status:        model.RecoveryReady,
	}
	_, err = f.recovery.UpdateRecoveryItem(ctx, item.ID, update, actor)
	require.NoError(t, err)
	// a second save while already ready must not log again
	_, err = f.recovery.UpdateRecoveryItem(ctx, item.ID, update, actor)
	require.NoError(t, err)

	events, err := f.products.GetProductEvents(ctx, "10000000001")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, model.EventRecoveryReceived, events[1].EventType)
	assert.Equal(t, model.EventRecoveryReady, events[2].EventType)

	p, err := f.products.GetProduct(ctx, "10000000001")
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, p.Status)

	ready, err := f.recovery.GetAllRecoveryItems(ctx, repository.RecoveryFilter{Status: string(model.RecoveryReady)})
	require.NoError(t, err)
	assert.Len(t, ready, 1)
}

func TestRecoveryWithoutProductLogsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.recovery.CreateRecoveryItem(ctx, &RecoveryRequest{Brand: "Dell", Model: "Optiplex 7070"}, actor)
	require.NoError(t, err)
	assert.Nil(t, item.OriginalAdsID)

	events, err := f.events.GetAllEvents(ctx, repository.DateEventFilter{})
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = f.recovery.CreateRecoveryItem(ctx, &RecoveryRequest{
		OriginalAdsID: strPtr("10000000009"), Brand: "Dell", Model: "Optiplex 7070",
	}, actor)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecoveryMutationsBroadcast(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	hub := ws.NewHub(nil)
	svc := NewRecoveryService(repository.NewRecoveryRepo(f.db), repository.NewProductRepo(f.db), repository.NewClientRepo(f.db), f.eventRepo, f.db, hub)

	item, err := svc.CreateRecoveryItem(ctx, &RecoveryRequest{Brand: "HP", Model: "EliteBook 840", Problem: "no power"}, actor)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteRecoveryItem(ctx, item.ID, actor))

	var actions []string
	for len(hub.Broadcast) > 0 {
		var ev ws.Event
		require.NoError(t, json.Unmarshal(<-hub.Broadcast, &ev))
		assert.Equal(t, "recovery", ev.Type)
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{"created", "deleted"}, actions)
}
