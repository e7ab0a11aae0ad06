package worker

import (
	"context"
	"testing"
	"time"

	"teebay-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureNotifier struct {
	sent []Notification
}

func (cn *captureNotifier) Notify(_ context.Context, n Notification) error {
	cn.sent = append(cn.sent, n)
	return nil
}

func TestPurchaseCompletedNotifiesSeller(t *testing.T) {
	notifier := &captureNotifier{}
	w := NewNotificationWorker(nil, notifier)

	event := &models.PurchaseCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e-1",
			EventType: models.EventTypePurchaseCompleted,
			Timestamp: time.Now(),
		},
		PurchaseID:   1,
		BuyerID:      10,
		SellerID:     20,
		ProductID:    5,
		ProductTitle: "Camping tent",
	}

	err := w.handlePurchaseCompleted(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(20), notifier.sent[0].RecipientID)
	assert.Contains(t, notifier.sent[0].Message, "Camping tent")
	assert.NotEmpty(t, notifier.sent[0].ID)
}

func TestRentalBookedNotifiesSeller(t *testing.T) {
	notifier := &captureNotifier{}
	w := NewNotificationWorker(nil, notifier)

	event := &models.RentalBookedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "e-2",
			EventType: models.EventTypeRentalBooked,
			Timestamp: time.Now(),
		},
		RentalID:     1,
		RenterID:     10,
		SellerID:     20,
		ProductID:    5,
		ProductTitle: "Power drill",
		RentFrom:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		RentTo:       time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	err := w.handleRentalBooked(context.Background(), event)

	require.NoError(t, err)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(20), notifier.sent[0].RecipientID)
	assert.Contains(t, notifier.sent[0].Message, "2025-01-01")
	assert.Contains(t, notifier.sent[0].Message, "2025-01-05")
}
