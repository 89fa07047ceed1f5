package constants

import "time"

const (
	CacheKeyTokenAccount = "recipe:token:%s" // %s -> token key
)

const (
	CacheExpireTokenAccount = 1 * time.Hour
)
