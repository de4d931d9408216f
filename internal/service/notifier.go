package service

import (
	"context"
	"encoding/json"
	"time"

	"inpatient-registration/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const notifyTimeout = 2 * time.Second

// Notifier delivers user-facing outcome messages. Delivery is fire-and-forget;
// implementations log their own failures.
type Notifier interface {
	Notify(kind entity.NotificationKind, title, message string)
}

type logNotifier struct {
	log *logrus.Logger
}

func NewLogNotifier(log *logrus.Logger) Notifier {
	return &logNotifier{log: log}
}

func (n *logNotifier) Notify(kind entity.NotificationKind, title, message string) {
	entry := n.log.WithFields(logrus.Fields{
		"notification": string(kind),
		"title":        title,
	})
	if kind == entity.NotificationError {
		entry.Warn(message)
		return
	}
	entry.Info(message)
}

type redisNotification struct {
	entity.Notification
	SentAt time.Time `json:"sent_at"`
}

type redisNotifier struct {
	client  *redis.Client
	channel string
	log     *logrus.Logger
}

// NewRedisNotifier publishes notifications as JSON on a Redis pub/sub channel.
func NewRedisNotifier(client *redis.Client, channel string, log *logrus.Logger) Notifier {
	return &redisNotifier{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (n *redisNotifier) Notify(kind entity.NotificationKind, title, message string) {
	payload, err := json.Marshal(redisNotification{
		Notification: entity.Notification{Kind: kind, Title: title, Message: message},
		SentAt:       time.Now().UTC(),
	})
	if err != nil {
		n.log.Warnf("Failed to encode notification: %+v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		n.log.Warnf("Failed to publish notification to %s: %+v", n.channel, err)
	}
}

type multiNotifier []Notifier

// NewMultiNotifier fans every notification out to each of notifiers in order.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) Notify(kind entity.NotificationKind, title, message string) {
	for _, n := range m {
		n.Notify(kind, title, message)
	}
}
