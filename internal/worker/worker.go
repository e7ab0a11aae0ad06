package worker

import (
	"context"
	"fmt"

	"teebay-service/internal/broker"
	"teebay-service/internal/models"
	"teebay-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is a message for the counterparty of a transaction. Delivery
// is a log line here; a push gateway would slot in behind Notifier.
type Notification struct {
	ID          string `json:"id"`
	RecipientID int64  `json:"recipient_id"`
	Message     string `json:"message"`
}

// Notifier delivers notifications to users
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to the service log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.GetLogger()}
}

func (ln *LogNotifier) Notify(_ context.Context, n Notification) error {
	ln.logger.Info("Notification",
		zap.String("notification_id", n.ID),
		zap.Int64("recipient_id", n.RecipientID),
		zap.String("message", n.Message))
	return nil
}

// NotificationWorker consumes transaction events and notifies the seller
// side of each transaction
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	notifier     Notifier
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, notifier Notifier) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		notifier: notifier,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnPurchaseCompleted(w.handlePurchaseCompleted)
	eventHandler.OnRentalBooked(w.handleRentalBooked)
	w.eventHandler = eventHandler

	return w
}

func (w *NotificationWorker) handlePurchaseCompleted(ctx context.Context, event *models.PurchaseCompletedEvent) error {
	return w.notifier.Notify(ctx, Notification{
		ID:          uuid.New().String(),
		RecipientID: event.SellerID,
		Message:     fmt.Sprintf("Your product %q was sold", event.ProductTitle),
	})
}

func (w *NotificationWorker) handleRentalBooked(ctx context.Context, event *models.RentalBookedEvent) error {
	return w.notifier.Notify(ctx, Notification{
		ID:          uuid.New().String(),
		RecipientID: event.SellerID,
		Message: fmt.Sprintf("Your product %q was rented from %s to %s",
			event.ProductTitle,
			event.RentFrom.Format("2006-01-02"),
			event.RentTo.Format("2006-01-02")),
	})
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	return w.consumer.Close()
}
