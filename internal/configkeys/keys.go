package configkeys

const (
	delimiter = "."

	EnvPrefix = "DECORATE"

	LogPrefix = "log"
	LogLevel  = LogPrefix + delimiter + "level"

	DebuggerPrefix   = "debugger"
	DebuggerDisplay  = DebuggerPrefix + delimiter + "display"
	DebuggerCatch    = DebuggerPrefix + delimiter + "catch"
	DebuggerPolicy   = DebuggerPrefix + delimiter + "policy"
	DebuggerExitCode = DebuggerPrefix + delimiter + "exit_code"

	CachePrefix     = "cache"
	CacheMaxEntries = CachePrefix + delimiter + "max_entries"
	CacheTruthiness = CachePrefix + delimiter + "truthiness"

	MetricsPrefix    = "metrics"
	MetricsNamespace = MetricsPrefix + delimiter + "namespace"
)
