package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/logger"
)

// PipelineKeyHeader carries the scheduler's API key.
const PipelineKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards the scheduled jobs that settle fundings and
// record plan snapshots for every user. apiKeys is a comma-separated list so
// a new key can be deployed before the old one is retired. User JWTs are
// never accepted here.
func PipelineAuthMiddleware(apiKeys string) gin.HandlerFunc {
	keys := splitKeys(apiKeys)
	log := logger.Named("pipeline")

	return func(c *gin.Context) {
		if len(keys) == 0 {
			abortWithError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		presented := c.GetHeader(PipelineKeyHeader)
		if !matchesAny(presented, keys) {
			log.Warnw("rejected pipeline request",
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"key_present", presented != "",
			)
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

func splitKeys(raw string) [][]byte {
	var keys [][]byte
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, []byte(k))
		}
	}
	return keys
}

// matchesAny compares against every key so timing does not reveal which one
// matched.
func matchesAny(presented string, keys [][]byte) bool {
	if presented == "" {
		return false
	}
	match := 0
	for _, k := range keys {
		match |= subtle.ConstantTimeCompare([]byte(presented), k)
	}
	return match == 1
}
