package findme

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// LogIndicator is an Indicator for boards and hosts without a spare LED. It
// keeps the state in memory and logs every change at debug level.
type LogIndicator struct {
	Name string
	Log  logrus.FieldLogger

	mu sync.Mutex
	on bool
}

func (l *LogIndicator) Set(on bool) {
	l.mu.Lock()
	changed := l.on != on
	l.on = on
	l.mu.Unlock()
	if changed && l.Log != nil {
		l.Log.WithFields(logrus.Fields{"indicator": l.Name, "on": on}).Debug("indicator changed")
	}
}

func (l *LogIndicator) Toggle() {
	l.mu.Lock()
	on := !l.on
	l.mu.Unlock()
	l.Set(on)
}

// On returns the current state.
func (l *LogIndicator) On() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}
