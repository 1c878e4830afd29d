package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionTokenKey returns the cache key for a bearer-token session.
func (r *CacheKeyStruct) SessionTokenKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// AvailableExamsKey returns the cache key for the projected list of active exams.
func (r *CacheKeyStruct) AvailableExamsKey() string {
	return "exams:available"
}

// ExamPayloadKey returns the cache key for a single exam's projected payload.
func (r *CacheKeyStruct) ExamPayloadKey(examID string) string {
	return fmt.Sprintf("exam:%s:payload", examID)
}

// PresenceChannel returns the Redis PubSub channel for online/offline events.
func (r *CacheKeyStruct) PresenceChannel() string {
	return "presence:events"
}

var CacheKey = NewCacheKeyStruct()
