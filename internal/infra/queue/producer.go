package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConversionPayload is the event published when a lead becomes a client.
// The worker turns it into a welcome email; other consumers can bind their
// own queues to ex.crm.
type ConversionPayload struct {
	ClientID     string `json:"client_id"`
	LeadID       string `json:"lead_id"`
	LeadName     string `json:"lead_name"`
	LeadEmail    string `json:"lead_email"`
	ContractID   string `json:"contract_id"`
	ContractName string `json:"contract_name"`
	ConvertedBy  string `json:"converted_by"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishConversion(ctx context.Context, payload ConversionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
