package common

const (
	RedisStreamRefresh = "reputation.refresh"

	RedisStreamGroup    = "collector-group"
	RedisStreamConsumer = "collector-consumer"

	RedisKeyRefreshLock = "refresh:lock:%s"
	RedisKeyRefreshLast = "refresh:last:%s"
)
