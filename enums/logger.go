package enums

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogLevels lists the levels accepted by configuration, in validator "oneof" form.
const LogLevels = LogLevelDebug + " " + LogLevelInfo + " " + LogLevelWarn + " " + LogLevelError
