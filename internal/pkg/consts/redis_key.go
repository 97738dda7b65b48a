package consts

const (
	InsightDirtyKey           = "insight:dirty"
	InsightDirtyProcessingKey = "insight:dirty:processing"
	RateLimitKey              = "ratelimit:"
)

const (
	InsightLock = "lock:insight:"
)
