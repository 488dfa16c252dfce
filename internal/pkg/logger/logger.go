package logger

// Logger is the logging contract the services and handlers write to. Both
// backends format their arguments with fmt.Sprint semantics.
type Logger interface {
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}
