package relay

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"sfcs-tracker/internal/config"
	"sfcs-tracker/internal/models"
)

// MQTTRelay MQTT 브로커로 공지를 발행하는 릴레이
type MQTTRelay struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger
}

// NewMQTTRelay MQTT 릴레이 생성 (브로커 연결 포함)
func NewMQTTRelay(cfg *config.Config, logger *zap.Logger) (*MQTTRelay, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTT.Broker)
	opts.SetClientID(cfg.MQTT.ClientID)

	if cfg.MQTT.Username != "" {
		opts.SetUsername(cfg.MQTT.Username)
	}
	if cfg.MQTT.Password != "" {
		opts.SetPassword(cfg.MQTT.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTRelay{
		client: client,
		topic:  cfg.MQTT.Topic,
		qos:    cfg.MQTT.QoS,
		logger: logger,
	}, nil
}

// Send 공지 메시지 발행
func (r *MQTTRelay) Send(ctx context.Context, msg models.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal relay message: %w", err)
	}

	token := r.client.Publish(r.topic, r.qos, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", r.topic, token.Error())
	}

	r.logger.Debug("Published relay message",
		zap.String("topic", r.topic),
		zap.String("sender", msg.SenderName),
	)
	return nil
}

// Close 브로커 연결 해제
func (r *MQTTRelay) Close() {
	r.client.Disconnect(250)
}
