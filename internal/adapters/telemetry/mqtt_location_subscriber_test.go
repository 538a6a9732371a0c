package telemetry

import (
	"context"
	"errors"
	"testing"

	"delivery-route-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) Ping(ctx context.Context, c domain.Coordinate) (domain.DriverLocation, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.DriverLocation), args.Error(1)
}

func TestHandleMessage(t *testing.T) {
	pinger := new(mockPinger)
	c := domain.Coordinate{Latitude: 55.95, Longitude: -3.19}
	pinger.On("Ping", mock.Anything, c).Return(domain.DriverLocation{Coordinate: c}, nil)

	sub := &MQTTLocationSubscriber{Pinger: pinger}
	err := sub.HandleMessage(context.Background(), []byte(`{"latitude":55.95,"longitude":-3.19}`))
	require.NoError(t, err)

	pinger.AssertExpectations(t)
}

func TestHandleMessageRejectsBadPayloads(t *testing.T) {
	pinger := new(mockPinger)
	sub := &MQTTLocationSubscriber{Pinger: pinger}

	for _, payload := range []string{`not json`, `{"latitude":55.9}`, `{}`} {
		assert.Error(t, sub.HandleMessage(context.Background(), []byte(payload)), payload)
	}

	pinger.AssertNotCalled(t, "Ping", mock.Anything, mock.Anything)
}

func TestHandleMessagePropagatesPingError(t *testing.T) {
	pinger := new(mockPinger)
	pinger.On("Ping", mock.Anything, mock.Anything).Return(domain.DriverLocation{}, errors.New("store down"))

	sub := &MQTTLocationSubscriber{Pinger: pinger}
	err := sub.HandleMessage(context.Background(), []byte(`{"latitude":1,"longitude":2}`))
	assert.ErrorContains(t, err, "store down")
}

func TestStartRequiresPinger(t *testing.T) {
	sub := &MQTTLocationSubscriber{Broker: "tcp://127.0.0.1:1", Topic: "t"}
	assert.Error(t, sub.Start(context.Background()))
}
