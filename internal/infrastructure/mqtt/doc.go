// Package mqtt provides the MQTT client for the Vervoer wearable bridge.
//
// The companion daemon uses MQTT for three things:
//   - receiving vital-sign readings published by the wearable bridge
//     (vervoer/vitals/{device}/{metric})
//   - tracking the wearable's connection status
//     (vervoer/device/{device}/status)
//   - delivering local notifications to the UI shell
//     (vervoer/notify/{device})
//
// The client wraps eclipse/paho.mqtt.golang with automatic reconnection,
// subscription restoration, Last Will and Testament publishing, and panic
// recovery around message handlers.
package mqtt
