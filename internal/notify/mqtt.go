package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTTSink publishes each alert batch as a JSON document to a topic.
type MQTTSink struct {
	client mqtt.Client
	topic  string
}

// mqttBatch is the published payload.
type mqttBatch struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
}

// NewMQTTSink connects to the broker and returns a sink publishing to
// topic. clientID defaults to a fresh one per process so two monitors
// never fight over a session.
func NewMQTTSink(broker, topic, clientID string) (*MQTTSink, error) {
	if clientID == "" {
		clientID = "watchline-" + uuid.NewString()[:8]
	}
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, errors.New("mqtt connect timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &MQTTSink{client: client, topic: topic}, nil
}

// Send publishes the rendered batch at QoS 1 and waits for the ack.
func (s *MQTTSink) Send(ctx context.Context, subject, body string) error {
	payload, err := json.Marshal(mqttBatch{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Subject:   subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("mqtt marshal: %w", err)
	}

	token := s.client.Publish(s.topic, 1, false, payload)

	wait := SendTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < wait {
			wait = d
		}
	}
	if !token.WaitTimeout(wait) {
		return errors.New("mqtt publish timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publish: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() {
	s.client.Disconnect(250)
}
