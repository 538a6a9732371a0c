package telemetry

import (
	"context"
	"delivery-route-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// LocationPinger records a driver position.
type LocationPinger interface {
	Ping(ctx context.Context, c domain.Coordinate) (domain.DriverLocation, error)
}

// MQTTLocationSubscriber feeds driver device pings published on an MQTT topic
// into the location slot. Payloads are JSON {"latitude": .., "longitude": ..}.
type MQTTLocationSubscriber struct {
	Broker   string
	Topic    string
	ClientID string
	Pinger   LocationPinger
	Timeout  time.Duration

	client mqtt.Client
}

type pingPayload struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HandleMessage decodes one payload and records it.
func (s *MQTTLocationSubscriber) HandleMessage(ctx context.Context, payload []byte) error {
	var p pingPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("handle location message: decode: %w", err)
	}
	if p.Latitude == nil || p.Longitude == nil {
		return errors.New("handle location message: latitude and longitude are required")
	}

	c := domain.Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}
	if _, err := s.Pinger.Ping(ctx, c); err != nil {
		return fmt.Errorf("handle location message: %w", err)
	}
	return nil
}

func (s *MQTTLocationSubscriber) timeout() time.Duration {
	if s.Timeout <= 0 {
		return 10 * time.Second
	}
	return s.Timeout
}

func (s *MQTTLocationSubscriber) wait(token mqtt.Token) error {
	if !token.WaitTimeout(s.timeout()) {
		return errors.New("timed out")
	}
	return token.Error()
}

// Start connects to the broker and subscribes. Messages are handled until Stop
// is called or ctx is cancelled.
func (s *MQTTLocationSubscriber) Start(ctx context.Context) error {
	if s.Pinger == nil {
		return errors.New("mqtt subscriber: pinger is nil")
	}

	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("delivery-route-service-%d", time.Now().UnixNano())
	}

	opts := mqtt.NewClientOptions().
		AddBroker(s.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(s.timeout()).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.WithError(err).WithField("broker", s.Broker).Warn("mqtt connection lost")
		})

	client := mqtt.NewClient(opts)
	if err := s.wait(client.Connect()); err != nil {
		return fmt.Errorf("mqtt subscriber: connect %q: %w", s.Broker, err)
	}

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		msgCtx, cancel := context.WithTimeout(ctx, s.timeout())
		defer cancel()

		if err := s.HandleMessage(msgCtx, msg.Payload()); err != nil {
			log.WithError(err).WithField("topic", msg.Topic()).Warn("dropping location message")
			return
		}
		log.WithField("topic", msg.Topic()).Debug("driver location updated from mqtt")
	}

	if err := s.wait(client.Subscribe(s.Topic, 1, handler)); err != nil {
		client.Disconnect(250)
		return fmt.Errorf("mqtt subscriber: subscribe %q: %w", s.Topic, err)
	}

	s.client = client
	log.WithFields(log.Fields{"broker": s.Broker, "topic": s.Topic}).Info("listening for driver locations")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop unsubscribes and disconnects. Safe to call more than once.
func (s *MQTTLocationSubscriber) Stop() {
	if s.client == nil || !s.client.IsConnected() {
		return
	}
	s.client.Unsubscribe(s.Topic).WaitTimeout(time.Second)
	s.client.Disconnect(250)
}
