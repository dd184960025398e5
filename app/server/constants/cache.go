package constants

import "time"

const (
	CacheKeyAuthToken = "quiz:auth:token:%s"
)

const (
	CacheExpireAuthToken = 1 * time.Hour
)
