package mongo

import "github.com/rs/zerolog"

// logger forwards driver log messages to zerolog. The driver uses level 1 for
// info and level 2 for debug.
type logger struct {
	log zerolog.Logger
}

func (l *logger) Info(level int, message string, keysAndValues ...interface{}) {
	var event *zerolog.Event
	switch level {
	case 1:
		event = l.log.Info()
	case 2:
		event = l.log.Debug()
	default:
		return
	}
	withFields(event, keysAndValues).Msg(message)
}

func (l *logger) Error(err error, message string, keysAndValues ...interface{}) {
	withFields(l.log.Error().Err(err), keysAndValues).Msg(message)
}

func withFields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		var value interface{}
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		event = event.Interface(key, value)
	}
	return event
}
