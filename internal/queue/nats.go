package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dontverifyme/internal/common"
	"dontverifyme/internal/persistence"

	"github.com/nats-io/nats.go"
)

const (
	DefaultNatsAckWaitDuration    time.Duration = 300 * time.Second
	DefaultNatsMaxAckPendingCount int           = 64
	DefaultNatsMaxMessageCount    int64         = 1024
	DefaultNatsMaxSizeBytes       int64         = 1024 * 1024 * 128
	DefaultNatsPublishTimeout     time.Duration = 5 * time.Second
	DefaultNatsStreamReplicaCount int           = 1
)

var (
	ErrorClientUndefined          = errors.New("client undefined")
	ErrorStreamingClientUndefined = errors.New("streaming client undefined")
)

// InitNatsOpts configures the InitNats method
type InitNatsOpts struct {
	// Id contains an identifier for the NATS client instance
	Id string

	// NatsConnection provides a managed connection to a NATS instance
	NatsConnection *persistence.Nats

	ServiceLogs chan<- common.ServiceLog
}

// InitNats initialises and registers a NATS-backed queue on top of an
// established connection
func InitNats(opts InitNatsOpts) (Queue, error) {
	var serviceLogs chan<- common.ServiceLog
	if opts.ServiceLogs != nil {
		serviceLogs = opts.ServiceLogs
	} else {
		serviceLogs = common.GetNoopServiceLog()
	}
	if opts.NatsConnection == nil {
		return nil, ErrorClientUndefined
	}
	client := opts.NatsConnection.GetClient()
	if client == nil {
		return nil, ErrorClientUndefined
	}
	streamContext, err := client.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to get jetstream context: %w", err)
	}
	instance := &Nats{
		Client:        client,
		ServiceLogs:   serviceLogs,
		streamContext: streamContext,
	}
	Register(opts.Id, instance)
	return instance, nil
}

func getNatsQueueInfo(opts QueueOpts) (stream, subject string) {
	stream = strings.ToLower(opts.Stream)
	subject = fmt.Sprintf("%s.%s.*", stream, strings.ToLower(opts.Subject))
	return
}

type Nats struct {
	Client      *nats.Conn
	ServiceLogs chan<- common.ServiceLog

	streamContext nats.JetStreamContext
}

func (n *Nats) Close() error {
	if err := n.Client.Drain(); err != nil {
		return fmt.Errorf("failed to drain connection[%s]: %w", n.Client.ConnectedAddr(), err)
	}
	n.Client.Close()
	return nil
}

func (n *Nats) Push(opts PushOpts) (*PushOutput, error) {
	if err := n.ensureNats(); err != nil {
		return nil, fmt.Errorf("failed to validate nats setup: %w", err)
	}
	_, subject := getNatsQueueInfo(opts.Queue)
	if err := n.ensureStream(n.streamOpts(opts.Queue, opts.Stream)); err != nil {
		return nil, fmt.Errorf("failed to ensure stream: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), DefaultNatsPublishTimeout)
	defer cancel()
	if _, err := n.streamContext.Publish(subject, opts.Data, nats.Context(ctx)); err != nil {
		return nil, fmt.Errorf("failed to publish message: %w", err)
	}
	return &PushOutput{
		MessageSizeBytes: len(opts.Data),
		Queue:            opts.Queue,
	}, nil
}

func (n *Nats) Subscribe(opts SubscribeOpts) error {
	if err := n.ensureNats(); err != nil {
		return fmt.Errorf("failed to validate nats setup: %w", err)
	}

	stream, subject := getNatsQueueInfo(opts.Queue)
	ensureStreamOpts := n.streamOpts(opts.Queue, opts.Stream)
	if err := n.ensureStream(ensureStreamOpts); err != nil {
		return fmt.Errorf("failed to ensure stream: %w", err)
	}

	ensureDurableOpts := natsDurableOpts{
		Durable:    opts.ConsumerId,
		Stream:     stream,
		Subject:    subject,
		StreamOpts: ensureStreamOpts,
	}
	if err := n.ensureDurable(ensureDurableOpts); err != nil {
		return err
	}

	sub, err := n.streamContext.PullSubscribe(
		subject,
		opts.ConsumerId,
		nats.Bind(stream, opts.ConsumerId),
	)
	if err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	n.ServiceLogs <- common.ServiceLogf(
		common.LogLevelDebug,
		"nats subscription created: "+
			"durable=%s "+
			"stream=%s "+
			"subject=%s",
		opts.ConsumerId,
		stream,
		subject,
	)

	nakBackoff := 10 * time.Second
	if opts.NakBackoff != 0 {
		nakBackoff = opts.NakBackoff
	}

	for {
		select {
		case <-opts.Context.Done():
			n.ServiceLogs <- common.ServiceLogf(
				common.LogLevelDebug,
				"nats subscription stopping: "+
					"durable=%s "+
					"stream=%s "+
					"subject=%s",
				opts.ConsumerId,
				stream,
				subject,
			)
			return opts.Context.Err()
		default:
		}

		msgs, err := sub.Fetch(1, nats.MaxWait(2*time.Second))
		if err != nil {
			// Timeout means no messages; keep polling.
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			return fmt.Errorf("fetch: %w", err)
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]

		err = opts.Handler(opts.Context, Message{
			Data:    msg.Data,
			Subject: msg.Subject,
		})
		if err != nil {
			n.ServiceLogs <- common.ServiceLogf(
				common.LogLevelWarn,
				"🔁 nats message handling failed, sending nak with delay[%v]: %s",
				nakBackoff,
				err,
			)
			_ = msg.NakWithDelay(nakBackoff)
			continue
		}
		if err := msg.Ack(); err != nil {
			return fmt.Errorf("failed to ack: %w", err)
		}
	}
}

func (n *Nats) ensureNats() error {
	errs := []error{}
	if n.Client == nil {
		errs = append(errs, ErrorClientUndefined)
	}
	if n.streamContext == nil {
		errs = append(errs, ErrorStreamingClientUndefined)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func (n *Nats) streamOpts(queueInfo QueueOpts, overrides *StreamOpts) natsStreamOpts {
	output := natsStreamOpts{
		MaxMessagesCount: DefaultNatsMaxMessageCount,
		MaxSizeBytes:     DefaultNatsMaxSizeBytes,
		Replicas:         DefaultNatsStreamReplicaCount,
		QueueInfo:        queueInfo,
	}
	if overrides != nil {
		if overrides.MaxMessagesCount != 0 {
			output.MaxMessagesCount = overrides.MaxMessagesCount
		}
		if overrides.MaxSizeBytes != 0 {
			output.MaxSizeBytes = overrides.MaxSizeBytes
		}
		if overrides.ReplicaCount != 0 {
			output.Replicas = overrides.ReplicaCount
		}
	}
	return output
}

type natsDurableOpts struct {
	AckWait    time.Duration
	Durable    string
	Stream     string
	Subject    string
	StreamOpts natsStreamOpts
}

func (n *Nats) ensureDurable(opts natsDurableOpts) error {
	ci, err := n.streamContext.ConsumerInfo(opts.Stream, opts.Durable)
	if err == nil && ci != nil {
		if ci.Config.FilterSubject != opts.Subject {
			return fmt.Errorf("failed to ensure durable subject association: have=%q want=%q", ci.Config.FilterSubject, opts.Subject)
		}
		return nil
	}

	maxAck := opts.StreamOpts.MaxAckPending
	if maxAck <= 0 {
		maxAck = DefaultNatsMaxAckPendingCount
	}
	ackWait := opts.AckWait
	if ackWait <= 0 {
		ackWait = DefaultNatsAckWaitDuration
	}

	_, err = n.streamContext.AddConsumer(opts.Stream, &nats.ConsumerConfig{
		Durable:           opts.Durable,
		FilterSubject:     opts.Subject,
		AckPolicy:         nats.AckExplicitPolicy,
		AckWait:           ackWait,
		MaxAckPending:     maxAck,
		DeliverPolicy:     nats.DeliverAllPolicy,
		ReplayPolicy:      nats.ReplayInstantPolicy,
		InactiveThreshold: 0,
	})
	if err != nil && !errors.Is(err, nats.ErrConsumerNameAlreadyInUse) && !errors.Is(err, nats.ErrObjectAlreadyExists) {
		return fmt.Errorf("failed to add consumer: %w", err)
	}
	return nil
}

type natsStreamOpts struct {
	MaxAckPending    int
	MaxMessagesCount int64
	MaxSizeBytes     int64
	Replicas         int
	QueueInfo        QueueOpts
}

func (n *Nats) ensureStream(opts natsStreamOpts) error {
	stream, subject := getNatsQueueInfo(opts.QueueInfo)
	if streamInfo, err := n.streamContext.StreamInfo(stream); err == nil && streamInfo != nil {
		cfg := streamInfo.Config
		if !n.isSubjectInSubjects(streamInfo.Config.Subjects, subject) {
			cfg.Subjects = append(cfg.Subjects, subject)
			if _, err := n.streamContext.UpdateStream(&cfg); err != nil {
				return fmt.Errorf("failed to update stream[%s:%s]: %w", stream, subject, err)
			}
		}
		cfg.Retention = nats.WorkQueuePolicy
		if _, err := n.streamContext.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("failed to update stream retention: %w", err)
		}
		return nil
	}

	cfg := &nats.StreamConfig{
		NoAck:     false,
		Name:      stream,
		Subjects:  []string{subject},
		Replicas:  opts.Replicas,
		Retention: nats.WorkQueuePolicy,
		// Limits; -1 = unlimited
		MaxMsgs:  opts.MaxMessagesCount,
		MaxBytes: opts.MaxSizeBytes,
		Storage:  nats.FileStorage,
		Discard:  nats.DiscardOld,
	}

	if _, err := n.streamContext.AddStream(cfg); err != nil {
		return fmt.Errorf("failed to add stream[%s:%s]: %w", stream, subject, err)
	}
	return nil
}

func (n *Nats) isSubjectInSubjects(subjects []string, target string) bool {
	for _, s := range subjects {
		if s == target {
			return true
		}
	}
	return false
}
