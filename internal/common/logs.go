package common

var noopServiceLog chan ServiceLog

func init() {
	noopServiceLog = make(chan ServiceLog, 64)
	go startNoopServiceLog()
}

// GetNoopServiceLog returns a channel that discards everything sent
// to it, used where a ServiceLog sink is required but nothing should
// be emitted (tests, optional wiring)
func GetNoopServiceLog() chan ServiceLog {
	return noopServiceLog
}

func startNoopServiceLog() {
	for {
		_, ok := <-noopServiceLog
		if !ok {
			break
		}
	}
}

func StopNoopServiceLog() {
	close(noopServiceLog)
}
