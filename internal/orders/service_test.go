package orders

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/borealis-store/borealis-backend/pkg/db/dbtest"
	"github.com/borealis-store/borealis-backend/pkg/db/models"
	"github.com/borealis-store/borealis-backend/pkg/enums"
	pkgerrors "github.com/borealis-store/borealis-backend/pkg/errors"
	"github.com/borealis-store/borealis-backend/pkg/types"
)

func seedOrder(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID:          userID,
		Items:           types.OrderItems{{ProductID: uuid.NewString(), Name: "Edison Lamp", Price: "$120.00", Quantity: 1}},
		TotalPrice:      "120.00",
		ShippingAddress: types.ShippingAddress{FullName: "Ada", PhoneNumber: "555-0100"},
		Status:          status,
		CreatedAt:       createdAt,
	}
	require.NoError(t, NewRepository(conn).Create(context.Background(), order))
	return order
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn), nil)
	require.NoError(t, err)
	return svc, conn
}

func strPtr(v string) *string { return &v }

func TestListForUserNewestFirst(t *testing.T) {
	svc, conn := newTestService(t)
	ada := dbtest.SeedUser(t, conn, "Ada", "ada@example.com")
	grace := dbtest.SeedUser(t, conn, "Grace", "grace@example.com")
	now := time.Now().UTC()

	older := seedOrder(t, conn, ada.ID, enums.OrderStatusPending, now.Add(-time.Hour))
	newer := seedOrder(t, conn, ada.ID, enums.OrderStatusPending, now)
	seedOrder(t, conn, grace.ID, enums.OrderStatusPending, now)

	list, err := svc.ListForUser(context.Background(), ada.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, "Edison Lamp", list[0].Items[0].Name)
	assert.Equal(t, "555-0100", list[0].ShippingAddress.PhoneNumber)
}

func TestListAllJoinsPurchaserWithoutCredentials(t *testing.T) {
	svc, conn := newTestService(t)
	ada := dbtest.SeedUser(t, conn, "Ada", "ada@example.com")
	seedOrder(t, conn, ada.ID, enums.OrderStatusPending, time.Now().UTC())

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].User)
	assert.Equal(t, ada.ID, list[0].User.ID)
	assert.Equal(t, "Ada", list[0].User.Name)
	assert.Equal(t, "ada@example.com", list[0].User.Email)

	raw, err := json.Marshal(list)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "hash")
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	ada := dbtest.SeedUser(t, conn, "Ada", "ada@example.com")
	order := seedOrder(t, conn, ada.ID, enums.OrderStatusPending, time.Now().UTC())
	repo := NewRepository(conn)

	_, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Shipped", TrackingNumber: strPtr("1Z999")})
	require.NoError(t, err)
	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, reloaded.Status)
	assert.Equal(t, "1Z999", reloaded.TrackingNumber)

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Shipped"})
	require.NoError(t, err)
	reloaded, err = repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "", reloaded.TrackingNumber)

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Pending"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Completed"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Cancelled"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	ada := dbtest.SeedUser(t, conn, "Ada", "ada@example.com")
	order := seedOrder(t, conn, ada.ID, enums.OrderStatusPending, time.Now().UTC())

	_, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "Lost"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.UpdateStatus(ctx, uuid.New(), UpdateStatusRequest{Status: "Shipped"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestUpdateStatusRejectsStaleTransition(t *testing.T) {
	conn := dbtest.Open(t)
	ada := dbtest.SeedUser(t, conn, "Ada", "ada@example.com")
	order := seedOrder(t, conn, ada.ID, enums.OrderStatusPending, time.Now().UTC())

	ok, err := NewRepository(conn).UpdateStatus(context.Background(), order.ID, enums.OrderStatusShipped, enums.OrderStatusCompleted, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
