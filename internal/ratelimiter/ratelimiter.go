package ratelimiter

import "time"

// Limiter decides whether a client identified by key may proceed. When the
// answer is no, it also reports how long the client should wait.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

type Config struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}
