package persistence

import (
	"fmt"
	"sync"
	"time"

	"dontverifyme/internal/common"

	"github.com/nats-io/nats.go"
)

type NatsConnectionOpts struct {
	AppName             string
	Host                string
	RetryInterval       time.Duration
	HealthcheckInterval time.Duration
}

type NatsAuthOpts struct {
	Username string
	Password string
}

func NewNats(
	connectionOpts NatsConnectionOpts,
	authOpts NatsAuthOpts,
	serviceLogs *chan common.ServiceLog,
) (*Nats, error) {
	serviceLogsInstance := common.GetNoopServiceLog()
	if serviceLogs != nil {
		serviceLogsInstance = *serviceLogs
	}
	healthcheckInterval := DefaultHealthcheckInterval
	if connectionOpts.HealthcheckInterval != 0 {
		healthcheckInterval = connectionOpts.HealthcheckInterval
	}
	retryInterval := DefaultRetryInterval
	if connectionOpts.RetryInterval != 0 {
		retryInterval = connectionOpts.RetryInterval
	}
	output := Nats{
		addr:                connectionOpts.Host,
		healthcheckInterval: healthcheckInterval,
		id:                  getAppName(connectionOpts.AppName),
		options:             []nats.Option{},
		retryInterval:       retryInterval,
		serviceLogs:         serviceLogsInstance,
		status: &Status{
			code:          StatusCodeInitialising,
			lastUpdatedAt: time.Now(),
		},
	}
	if authOpts.Username != "" && authOpts.Password != "" {
		output.options = append(output.options, nats.UserInfo(authOpts.Username, authOpts.Password))
	} else {
		output.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "nats[%s] connecting without authentication", output.id)
	}
	return &output, nil
}

type Nats struct {
	id      string
	client  *nats.Conn
	addr    string
	options []nats.Option

	healthcheckInterval time.Duration
	retryCount          int
	retryInterval       time.Duration

	serviceLogs chan common.ServiceLog
	status      *Status
}

func (n *Nats) GetClient() *nats.Conn {
	return n.client
}

func (n *Nats) GetId() string {
	return n.id
}

func (n *Nats) GetStatus() *Status {
	n.status.mutex.Lock()
	defer n.status.mutex.Unlock()
	return &Status{
		code:          n.status.code,
		lastUpdatedAt: n.status.lastUpdatedAt,
		err:           n.status.err,
	}
}

func (n *Nats) Init() error {
	n.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "nats[%s] is initialising...", n.id)
	if err := n.connect(); err != nil {
		return n.status.err
	}
	if err := n.ping(); err != nil {
		return err
	}
	go n.startAutoReconnector()
	go n.startConnectionPinger()
	return nil
}

func (n *Nats) Shutdown() error {
	n.serviceLogs <- common.ServiceLogf(common.LogLevelDebug, "shutting down nats connection...")
	currentStatusCode := n.status.GetCode()
	n.status.set(StatusCodeShuttingDown, nil)
	if currentStatusCode == StatusCodeOk {
		if err := n.client.Flush(); err != nil {
			n.serviceLogs <- common.ServiceLogf(common.LogLevelError, "failed to flush nats")
		}
		n.client.Close()
		n.client = nil
	}
	return nil
}

// startAutoReconnector is designed to be called as a goroutine in the background,
// it checks for an errored status and attempts to reconnect to the broker until
// it's successful again
func (n *Nats) startAutoReconnector() {
	var retryLock sync.Mutex

	for {
		if n.status.GetCode() == StatusCodeShuttingDown {
			return
		}
		if n.status.GetError() != nil {
			if err := n.connect(); err != nil {
				retryLock.Lock()
				n.retryCount++
				retryLock.Unlock()
				n.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to reconnect to nats[%s] after %v attempts: %s", n.id, n.retryCount, err)
				<-time.After(n.retryInterval)
				continue
			}
			if err := n.ping(); err != nil {
				retryLock.Lock()
				n.retryCount++
				retryLock.Unlock()
				n.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to ping nats[%s] on reconnection after %v attempts: %s", n.id, n.retryCount, err)
				<-time.After(n.retryInterval)
				continue
			}
			retryLock.Lock()
			n.serviceLogs <- common.ServiceLogf(common.LogLevelInfo, "reconnected to nats[%s] after %v attempts", n.id, n.retryCount+1)
			n.retryCount = 0
			retryLock.Unlock()
		}
		<-time.After(n.healthcheckInterval)
	}
}

// startConnectionPinger is designed to be called as a goroutine in the background,
// it does pings to the target broker and sets the status to an error state if
// a 'ping' type of request fails
func (n *Nats) startConnectionPinger() {
	for {
		if n.status.GetCode() == StatusCodeShuttingDown {
			return
		}
		if err := n.ping(); err != nil {
			n.serviceLogs <- common.ServiceLogf(common.LogLevelWarn, "failed to ping nats[%s]: %s", n.id, err)
		}
		<-time.After(n.healthcheckInterval)
	}
}

func (n *Nats) connect() error {
	var connectErr error
	if n.client, connectErr = nats.Connect("nats://"+n.addr, n.options...); connectErr != nil {
		n.status.set(StatusCodeConnectError, fmt.Errorf("nats[%s] failed to connect: %w", n.id, connectErr))
		return n.status.GetError()
	}
	if !n.client.IsConnected() {
		n.status.set(StatusCodeConnectError, fmt.Errorf("nats[%s] failed to verify connection", n.id))
		return n.status.GetError()
	}
	n.status.set(StatusCodeOk, nil)
	return nil
}

func (n *Nats) ping() error {
	if n.status.GetCode() == StatusCodeConnectError {
		return fmt.Errorf("failed to ping nats[%s], there is no connection", n.id)
	}
	if n.client.IsClosed() {
		n.status.set(StatusCodePingError, fmt.Errorf("nats[%s] connection closed, last error: %w", n.id, n.client.LastError()))
		return n.status.GetError()
	}
	if n.client.IsDraining() {
		n.status.set(StatusCodePingError, fmt.Errorf("nats[%s] connection is being drained, last error: %w", n.id, n.client.LastError()))
		return n.status.GetError()
	}
	if n.client.IsReconnecting() {
		n.status.set(StatusCodePingError, fmt.Errorf("nats[%s] connection is re-establishing, last error: %w", n.id, n.client.LastError()))
		return n.status.GetError()
	}
	n.status.set(StatusCodeOk, nil)
	return nil
}
