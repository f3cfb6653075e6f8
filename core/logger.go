package core

// Logger is the app-wide logging contract.
// Implementations accept arbitrary trailing args (errors, maps, students)
// and decide themselves how to report them.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
