package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WelcomeSender is what the worker needs from the mail layer.
type WelcomeSender interface {
	SendWelcome(to, name, contractName string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mail    WelcomeSender
}

func NewWorker(ch *amqp.Channel, mail WelcomeSender) *Worker {
	return &Worker{Channel: ch, Mail: mail}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ConversionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] malformed payload: %s", err)
				// Poison message. Reject without requeue so it moves to the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("[WORKER] sending welcome mail for client %s (%s)", payload.ClientID, payload.LeadEmail)

			if err := w.Mail.SendWelcome(payload.LeadEmail, payload.LeadName, payload.ContractName); err != nil {
				log.Printf("[WORKER] welcome mail failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}
