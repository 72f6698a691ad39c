package consumer

import (
	"context"
	"encoding/json"

	"leavedesk/internal/events"
	"leavedesk/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns lifecycle events into notifications. A
// message that cannot be decoded is committed and skipped; a message
// whose handling fails is left uncommitted so it is retried.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notificationService.CreateFromEvent(ctx, event); err != nil {
			log.Error("create notification from event failed",
				zap.String("event_type", event.EventType),
				zap.String("leave_id", event.LeaveID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave lifecycle event handled",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
	}
}
