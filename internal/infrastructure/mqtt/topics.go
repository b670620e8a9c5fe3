package mqtt

import "fmt"

// Topic prefixes for the Vervoer MQTT hierarchy.
//
// All wearable bridge topics use the flat scheme:
// vervoer/{category}/{device_id}[/{metric}]
const (
	// TopicPrefix is the base for all Vervoer topics.
	TopicPrefix = "vervoer"

	// TopicPrefixSystem is the base for companion system topics.
	TopicPrefixSystem = "vervoer/system"
)

// Topics provides builders for Vervoer MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	vitals := topics.Vitals("vervoer-001", "heart_rate")
//	// Returns: "vervoer/vitals/vervoer-001/heart_rate"
type Topics struct{}

// Vitals returns the topic for a single metric reading from the wearable.
//
// Example: vervoer/vitals/vervoer-001/heart_rate
func (Topics) Vitals(deviceID, metric string) string {
	return fmt.Sprintf("%s/vitals/%s/%s", TopicPrefix, deviceID, metric)
}

// AllVitals returns a wildcard subscription matching every metric of a device.
//
// Example: vervoer/vitals/vervoer-001/+
func (Topics) AllVitals(deviceID string) string {
	return fmt.Sprintf("%s/vitals/%s/+", TopicPrefix, deviceID)
}

// DeviceStatus returns the topic carrying the wearable's connection status.
//
// Example: vervoer/device/vervoer-001/status
func (Topics) DeviceStatus(deviceID string) string {
	return fmt.Sprintf("%s/device/%s/status", TopicPrefix, deviceID)
}

// Notify returns the topic for local notification delivery to the UI shell.
//
// Example: vervoer/notify/vervoer-001
func (Topics) Notify(deviceID string) string {
	return fmt.Sprintf("%s/notify/%s", TopicPrefix, deviceID)
}

// SystemStatus returns the topic for the companion's own online/offline status.
//
// Example: vervoer/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
