package queue

import (
	"context"
	"fmt"
	"time"
)

var queueMap = map[string]Queue{}

func Register(id string, client Queue) {
	queueMap[id] = client
}

func Get(id string) (Queue, error) {
	instance, ok := queueMap[id]
	if !ok {
		return nil, fmt.Errorf("failed to find queue[%s]", id)
	}
	return instance, nil
}

type Queue interface {
	Push(PushOpts) (*PushOutput, error)
	Subscribe(SubscribeOpts) error
}

type Message struct {
	Data    []byte `json:"data"`
	Subject string `json:"subject"`
}

type MessageHandler func(context.Context, Message) error

type PushOpts struct {
	Data   []byte
	Queue  QueueOpts
	Stream *StreamOpts
}

type PushOutput struct {
	MessageSizeBytes int
	Queue            QueueOpts
}

type QueueOpts struct {
	Stream  string
	Subject string
}

type SubscribeOpts struct {
	ConsumerId string
	Context    context.Context
	Handler    MessageHandler
	Queue      QueueOpts
	Stream     *StreamOpts
	NakBackoff time.Duration
}

type StreamOpts struct {
	MaxMessagesCount int64
	MaxSizeBytes     int64
	ReplicaCount     int
}
