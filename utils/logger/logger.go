package logger

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

type logPair struct {
	logFn func(...any)
	obj   string
	msg   string
	done  chan struct{}
}

const (
	logSize   = 1000
	objLength = 20
)

var (
	logCh     = make(chan logPair, logSize)
	drainOnce sync.Once
)

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		objStr = reflect.TypeOf(obj).String()
	}
	if len(objStr) > objLength {
		objStr = objStr[:objLength]
	}
	return
}

func drain() {
	sb := new(bytes.Buffer)
	for logPair := range logCh {
		if logPair.done != nil {
			close(logPair.done)
			continue
		}
		sb.WriteString(fmt.Sprintf("|%20s|%-100s", logPair.obj, logPair.msg))
		logPair.logFn(sb.String())
		sb.Reset()
	}
}

func enqueue(lvl logrus.Level, logFn func(...any), object any, msg string) {
	if logrus.GetLevel() < lvl {
		return
	}
	drainOnce.Do(func() { go drain() })
	logCh <- logPair{
		logFn: logFn,
		obj:   objToString(object),
		msg:   msg,
	}
}

// Init sets the level and the text formatter shared by every package.
func Init(lvl logrus.Level) {
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/02/01 15:04:05",
	})
	drainOnce.Do(func() { go drain() })
}

// InitLevel parses a level name such as "debug" or "warning" and calls Init.
func InitLevel(name string) error {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	Init(lvl)
	return nil
}

// Flush blocks until every record queued before the call has been written.
func Flush() {
	drainOnce.Do(func() { go drain() })
	done := make(chan struct{})
	logCh <- logPair{done: done}
	<-done
}

func Trace(object any, message string) {
	enqueue(logrus.TraceLevel, logrus.Trace, object, message)
}

func Tracef(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.TraceLevel {
		return
	}
	enqueue(logrus.TraceLevel, logrus.Trace, object, fmt.Sprintf(message, args...))
}

func Debug(object any, message string) {
	enqueue(logrus.DebugLevel, logrus.Debug, object, message)
}

func Debugf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.DebugLevel {
		return
	}
	enqueue(logrus.DebugLevel, logrus.Debug, object, fmt.Sprintf(message, args...))
}

func Info(object any, message string) {
	enqueue(logrus.InfoLevel, logrus.Info, object, message)
}

func Infof(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.InfoLevel {
		return
	}
	enqueue(logrus.InfoLevel, logrus.Info, object, fmt.Sprintf(message, args...))
}

func Warning(object any, message string) {
	enqueue(logrus.WarnLevel, logrus.Warning, object, message)
}

func Warningf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.WarnLevel {
		return
	}
	enqueue(logrus.WarnLevel, logrus.Warning, object, fmt.Sprintf(message, args...))
}

func Error(object any, message string) {
	enqueue(logrus.ErrorLevel, logrus.Error, object, message)
}

func Errorf(object any, message string, args ...any) {
	if logrus.GetLevel() < logrus.ErrorLevel {
		return
	}
	enqueue(logrus.ErrorLevel, logrus.Error, object, fmt.Sprintf(message, args...))
}

// Fatal writes queued records, logs the message and exits with status 1.
// Deferred functions do not run.
func Fatal(object any, message string) {
	Flush()
	logrus.Fatalf("|%20s|%-100s", objToString(object), message)
}

func Fatalf(object any, message string, args ...any) {
	Fatal(object, fmt.Sprintf(message, args...))
}

// Exit writes queued records and terminates the process with code.
func Exit(code int) {
	Flush()
	os.Exit(code)
}
