package constants

type contextKey string

const (
	AppKey    contextKey = "app"
	PoolKey   contextKey = "pool"
	TxKey     contextKey = "tx"
	CallerKey contextKey = "caller"
	LoggerKey contextKey = "logger"
)
