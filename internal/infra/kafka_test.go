package infra

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationTopic(t *testing.T) {
	assert.Equal(t, "gambit.notifications.all", NotificationTopic("all"))
	assert.Equal(t, "gambit.notifications.user", NotificationTopic("user"))
}

func TestDisabledProducerIsNoop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := NewNotificationProducer("", false, logger)

	err := p.PublishNotification(context.Background(), "all", 1, []byte(`{}`))
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
