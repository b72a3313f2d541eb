package redisrepo

import "fmt"

const (
	USER_CACHE_KEY     = "user-cache:%s" // <userID>
	PAGE_CACHE_KEY     = "page-cache:%s" // <request URI>
	PAGE_CACHE_PATTERN = "page-cache:*"
)

func UserCacheKey(userID string) string {
	return fmt.Sprintf(USER_CACHE_KEY, userID)
}

func PageCacheKey(path string) string {
	return fmt.Sprintf(PAGE_CACHE_KEY, path)
}
