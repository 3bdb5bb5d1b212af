package reminder

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Fardin5046/salat-tracker/internal/prayer"
)

const reminderTopic = "salat/reminders"

// MQTTNotifier publishes reminders to a broker so devices other than
// the one running the server (phone, wall display) can surface them.
type MQTTNotifier struct {
	client mqtt.Client
}

func NewMQTTNotifier(brokerURL, clientID string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = func(c mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTTNotifier{client: client}, nil
}

type reminderMessage struct {
	Prayer string `json:"prayer"`
	Label  string `json:"label"`
	Time   string `json:"time"`
}

func (m *MQTTNotifier) Notify(k prayer.Key, label, at string) {
	payload, err := json.Marshal(reminderMessage{Prayer: string(k), Label: label, Time: at})
	if err != nil {
		return
	}
	if token := m.client.Publish(reminderTopic, 0, false, payload); token.Wait() && token.Error() != nil {
		log.Error().Err(token.Error()).Str("prayer", string(k)).Msg("failed to publish reminder")
	}
}
