package service

import (
	"context"
	"testing"

	"ads-inventory-ws/internal/model"
	"ads-inventory-ws/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmailIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.client(t, "Ops@Acme.in")
	assert.Equal(t, "ops@acme.in", c.Email)
	assert.True(t, c.IsActive)

	_, err := f.clients.CreateClient(ctx, &ClientRequest{Name: "Copy", Email: "OPS@acme.in"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.clients.DeleteClient(ctx, c.ID, actor))
	_, err = f.clients.CreateClient(ctx, &ClientRequest{Name: "Copy", Email: "ops@acme.in"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists, "deleted clients keep their email")
}

func TestUpdateClientEmailRecheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.client(t, "a@acme.in")
	f.client(t, "b@acme.in")

	_, err := f.clients.UpdateClient(ctx, a.ID, &ClientRequest{Name: "A", Email: "b@acme.in"}, actor)
	assert.ErrorIs(t, err, ErrEmailExists)

	inactive := false
	updated, err := f.clients.UpdateClient(ctx, a.ID, &ClientRequest{Name: "A", Email: "a@acme.in", IsActive: &inactive}, actor)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active := true
	list, err := f.clients.GetAllClients(ctx, repository.ClientFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b@acme.in", list[0].Email)
}

func TestClientValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.clients.CreateClient(context.Background(), &ClientRequest{Name: "X", Email: "not-an-email"}, actor)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.clients.CreateClient(context.Background(), &ClientRequest{Name: "X", Email: "x@y.in", IDProofType: "library-card"}, actor)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequirementNeedsClient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.reqs.CreateRequirement(ctx, &RequirementRequest{ClientID: 77, Quantity: 2}, actor)
	assert.ErrorIs(t, err, ErrClientNotFound)

	c := f.client(t, "a@acme.in")
	r, err := f.reqs.CreateRequirement(ctx, &RequirementRequest{
		ClientID: c.ID, Brand: "Dell", Quantity: 5, Budget: decimal.NewFromInt(250000), RequiredBy: strPtr("2026-11-30"),
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.RequirementOpen, r.Status)

	_, err = f.reqs.CreateRequirement(ctx, &RequirementRequest{ClientID: c.ID, Quantity: 0}, actor)
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := f.reqs.UpdateRequirement(ctx, r.ID, &RequirementRequest{
		ClientID: c.ID, Brand: "Dell", Quantity: 5, Status: model.RequirementFulfilled,
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, model.RequirementFulfilled, updated.Status)
}
