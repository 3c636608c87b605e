package insights

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventSearch = "search"
	EventRefine = "refine"
)

// Event is one user interaction, published for downstream analytics.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Attribute string    `json:"attribute,omitempty"`
	Value     string    `json:"value,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Publisher struct {
	conn     *amqp.Connection
	exchange string
}

// NewPublisher connects to the broker and declares the event exchange.
func NewPublisher(url string, prefix string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	name := prefix + "_events"
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, exchange: name}, nil
}

// Send publishes the event, filling in ID and Timestamp when unset.
func (p *Publisher) Send(event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	bytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	return ch.Publish(
		p.exchange,
		event.Type,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}

func (p *Publisher) Close() error {
	return p.conn.Close()
}
