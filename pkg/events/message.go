package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// VersionMetadataKey carries the payload schema version of a message.
const VersionMetadataKey = "event_version"

// NewJSONMessage marshals payload into a message stamped with version.
func NewJSONMessage(payload any, version int) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(VersionMetadataKey, strconv.Itoa(version))
	return msg, nil
}

// DecodeJSON unmarshals msg into dst. Messages stamped with a version other
// than want are rejected.
func DecodeJSON(msg *message.Message, want int, dst any) error {
	if v := msg.Metadata.Get(VersionMetadataKey); v != "" && v != strconv.Itoa(want) {
		return fmt.Errorf("events: unsupported version %s, want %d", v, want)
	}
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("events: decode %s: %w", msg.UUID, err)
	}
	return nil
}

// PublishInTx publishes payload to topic inside tx, carrying the trace
// context of ctx.
func (q *EventBus) PublishInTx(ctx context.Context, tx *sql.Tx, topic string, payload any, version int) error {
	msg, err := NewJSONMessage(payload, version)
	if err != nil {
		return err
	}
	injectTrace(ctx, msg)
	p, err := q.NewTxPublisher(tx)
	if err != nil {
		return err
	}
	if err := p.Publish(topic, msg); err != nil {
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}
