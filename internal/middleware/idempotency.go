package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Idempotency replays the cached response for a repeated Idempotency-Key
// and rejects a duplicate that arrives while the first is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		employeeID := c.GetString("employee_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// Short-lived lock so a crash can't wedge the key forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this key is already being processed",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
