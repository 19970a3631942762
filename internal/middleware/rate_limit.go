// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Idle clients are evicted after this long so the per-IP map doesn't grow
// unbounded.
const clientIdleTTL = 5 * time.Minute

// The three traffic classes this API serves. The credential tier slows
// signup/signin guessing; the avatar tier keeps 2MB multipart uploads from
// monopolizing the storage path.
var (
	apiTier        = newClientLimiter(rate.Every(100*time.Millisecond), 20) // 10/s, burst 20
	credentialTier = newClientLimiter(rate.Every(12*time.Second), 5)       // 5/min
	avatarTier     = newClientLimiter(rate.Every(20*time.Second), 3)       // 3/min
)

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter hands each client IP its own token bucket.
type clientLimiter struct {
	mtx     sync.Mutex
	clients map[string]*clientEntry
	rate    rate.Limit
	burst   int
}

func newClientLimiter(r rate.Limit, burst int) *clientLimiter {
	cl := &clientLimiter{
		clients: make(map[string]*clientEntry),
		rate:    r,
		burst:   burst,
	}
	go cl.evictIdle()
	return cl
}

func (cl *clientLimiter) evictIdle() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cl.mtx.Lock()
		for ip, e := range cl.clients {
			if time.Since(e.lastSeen) > clientIdleTTL {
				delete(cl.clients, ip)
			}
		}
		cl.mtx.Unlock()
	}
}

func (cl *clientLimiter) allow(ip string) bool {
	cl.mtx.Lock()
	defer cl.mtx.Unlock()

	e, ok := cl.clients[ip]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(cl.rate, cl.burst)}
		cl.clients[ip] = e
	}
	e.lastSeen = time.Now()
	return e.limiter.Allow()
}

func (cl *clientLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GeneralRateLimit guards every route.
func GeneralRateLimit() gin.HandlerFunc {
	return apiTier.middleware()
}

// AuthRateLimit throttles signup and signin attempts.
func AuthRateLimit() gin.HandlerFunc {
	return credentialTier.middleware()
}

// UploadRateLimit caps avatar uploads.
func UploadRateLimit() gin.HandlerFunc {
	return avatarTier.middleware()
}
