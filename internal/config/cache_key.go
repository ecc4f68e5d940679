package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AIDailyUsageKey returns the Redis key counting a user's AI generations for one UTC day.
func (r *CacheKeyStruct) AIDailyUsageKey(userID int, day string) string {
	return fmt.Sprintf("ai:limit:%d:%s", userID, day)
}

// ArchiveObjectKey returns the object key an uploaded source document is archived under.
func (r *CacheKeyStruct) ArchiveObjectKey(userID int, uploadID, filename string) string {
	return fmt.Sprintf("sources/%d/%s/%s", userID, uploadID, filename)
}

var CacheKey = NewCacheKeyStruct()
