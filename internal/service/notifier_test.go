package service

import (
	"testing"
	"time"

	"inpatient-registration/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got []entity.Notification
}

func (r *recordingNotifier) Notify(kind entity.NotificationKind, title, message string) {
	r.got = append(r.got, entity.Notification{Kind: kind, Title: title, Message: message})
}

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestLogNotifier_LevelsByKind(t *testing.T) {
	log, hook := test.NewNullLogger()
	n := NewLogNotifier(log)

	n.Notify(entity.NotificationSuccess, "Berhasil!", "Pasien Ani berhasil didaftarkan")
	n.Notify(entity.NotificationError, "Gagal!", "Terjadi kesalahan saat mendaftarkan pasien")

	require.Len(t, hook.Entries, 2)
	assert.Equal(t, logrus.InfoLevel, hook.Entries[0].Level)
	assert.Equal(t, "Pasien Ani berhasil didaftarkan", hook.Entries[0].Message)
	assert.Equal(t, "Berhasil!", hook.Entries[0].Data["title"])
	assert.Equal(t, logrus.WarnLevel, hook.Entries[1].Level)
	assert.Equal(t, "error", hook.Entries[1].Data["notification"])
}

func TestMultiNotifier_FansOut(t *testing.T) {
	a, b := &recordingNotifier{}, &recordingNotifier{}
	n := NewMultiNotifier(a, b)

	n.Notify(entity.NotificationSuccess, "Berhasil!", "ok")

	want := []entity.Notification{{Kind: entity.NotificationSuccess, Title: "Berhasil!", Message: "ok"}}
	assert.Equal(t, want, a.got)
	assert.Equal(t, want, b.got)
}

func TestRedisNotifier_LogsPublishFailure(t *testing.T) {
	log, hook := test.NewNullLogger()
	client := unreachableRedis()
	defer client.Close()

	NewRedisNotifier(client, "inpatient:notifications", log).
		Notify(entity.NotificationSuccess, "Berhasil!", "ok")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, "Failed to publish notification")
}
