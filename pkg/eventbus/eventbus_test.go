package eventbus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/pulseworks/worktrack/pkg/logging"
)

type statusChanged struct {
	componentID int64
	status      string
}

type otherEvent struct{}

func TestPublisher_PublishDispatchesToMatchingHandler(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	var got *statusChanged
	publisher.Subscribe(func(e *statusChanged) {
		got = e
	})

	publisher.Publish(&statusChanged{componentID: 7, status: "Live"})

	require.NotNil(t, got)
	require.Equal(t, int64(7), got.componentID)
	require.Equal(t, "Live", got.status)
}

func TestPublisher_PublishNoSubscribersLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.WarnLevel)

	publisher := NewEventPublisher(log)
	publisher.Subscribe(func(e *statusChanged) {
		t.Error("should not be called")
	})

	publisher.Publish(&otherEvent{})

	require.True(t, strings.Contains(buf.String(), "no matching subscribers"))
}

func TestPublisher_PanickingHandlerDoesNotPropagate(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.ErrorLevel))
	publisher.Subscribe(func(e *statusChanged) {
		panic("boom")
	})

	require.NotPanics(t, func() {
		publisher.Publish(&statusChanged{})
	})
}

func TestPublisher_Unsubscribe(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.PanicLevel))
	handler := func(e *statusChanged) {}
	publisher.Subscribe(handler)
	require.Equal(t, 1, publisher.SubscribersCount())

	publisher.Unsubscribe(handler)
	require.Equal(t, 0, publisher.SubscribersCount())
}
