package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/souhardya/vervoer-core/internal/infrastructure/mqtt"
)

// notificationQoS delivers notifications at least once.
const notificationQoS = 1

// notification is the wire payload published to the notify topic.
type notification struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Sound     bool      `json:"sound"`
	Timestamp time.Time `json:"timestamp"`
}

// MQTTNotifier delivers device notifications by publishing to the device's
// notify topic, where the UI shell's push bridge picks them up.
type MQTTNotifier struct {
	client   *mqtt.Client
	deviceID string
}

// NewMQTTNotifier creates a notifier for the given device.
func NewMQTTNotifier(client *mqtt.Client, deviceID string) *MQTTNotifier {
	return &MQTTNotifier{client: client, deviceID: deviceID}
}

// Notify implements Notifier.
func (n *MQTTNotifier) Notify(title, body string) error {
	payload, err := json.Marshal(notification{
		Title:     title,
		Body:      body,
		Sound:     true,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	topic := mqtt.Topics{}.Notify(n.deviceID)
	if err := n.client.Publish(topic, payload, notificationQoS, false); err != nil {
		return fmt.Errorf("publishing notification: %w", err)
	}
	return nil
}
