package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jamalparfum/storefront/pkg/response"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// SubmissionHeader carries the submission id for non-form clients
	SubmissionHeader = "X-Idempotency-Key"
	// SubmissionField is the hidden form field rendered into checkout forms
	SubmissionField = "submission_id"
	// ContextKeySubmissionID is the gin context key for the accepted submission id
	ContextKeySubmissionID = "submission_id"
	// SubmissionKeyPrefix prefixes every guard record in Redis
	SubmissionKeyPrefix = "submission:"

	DefaultSubmissionTTL = 24 * time.Hour
	DefaultProcessingTTL = 60 * time.Second
)

// ErrDuplicateSubmission is attached to the gin context of a rejected request
var ErrDuplicateSubmission = errors.New("duplicate submission")

const duplicateMessage = "Pesanan ini sudah dikirim."

// SubmissionStatus is the state of a guarded submission
type SubmissionStatus string

const (
	StatusProcessing SubmissionStatus = "processing"
	StatusCompleted  SubmissionStatus = "completed"
)

// SubmissionRecord is what the guard keeps in Redis per submission id
type SubmissionRecord struct {
	Key          string           `json:"key"`
	Status       SubmissionStatus `json:"status"`
	ResponseCode int              `json:"response_code,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
}

// RedisClient is the subset of go-redis the guard needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SubmissionConfig configures SubmissionGuard
type SubmissionConfig struct {
	Redis RedisClient
	// TTL for completed records
	TTL time.Duration
	// ProcessingTTL bounds how long an in-flight record blocks resubmission
	ProcessingTTL time.Duration
	// KeyExtractor reads the submission id (default: form field, then header)
	KeyExtractor func(*gin.Context) string
	Logger       *zap.Logger
}

// DefaultSubmissionConfig returns default configuration
func DefaultSubmissionConfig(rdb RedisClient) *SubmissionConfig {
	return &SubmissionConfig{
		Redis:         rdb,
		TTL:           DefaultSubmissionTTL,
		ProcessingTTL: DefaultProcessingTTL,
		KeyExtractor:  defaultKeyExtractor,
		Logger:        zap.NewNop(),
	}
}

func defaultKeyExtractor(c *gin.Context) string {
	if id := strings.TrimSpace(c.PostForm(SubmissionField)); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetHeader(SubmissionHeader))
}

// SubmissionGuard rejects a repeated POST carrying an already seen submission id
// with 409. Requests without an id pass through, and so does everything when
// Redis is unavailable. A submission whose handler answered with an error is
// released so the form can be sent again.
func SubmissionGuard(config *SubmissionConfig) gin.HandlerFunc {
	if config.TTL == 0 {
		config.TTL = DefaultSubmissionTTL
	}
	if config.ProcessingTTL == 0 {
		config.ProcessingTTL = DefaultProcessingTTL
	}
	if config.KeyExtractor == nil {
		config.KeyExtractor = defaultKeyExtractor
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if config.Redis == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := config.KeyExtractor(c)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := SubmissionKeyPrefix + key

		record := &SubmissionRecord{
			Key:       key,
			Status:    StatusProcessing,
			CreatedAt: time.Now(),
		}

		claimed, err := trySetRecord(ctx, config.Redis, redisKey, record, config.ProcessingTTL)
		if err != nil {
			// fail open
			config.Logger.Warn("submission guard unavailable",
				zap.String("submission_id", key),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !claimed {
			rejectDuplicate(c)
			return
		}

		c.Set(ContextKeySubmissionID, key)
		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusBadRequest {
			_ = config.Redis.Del(ctx, redisKey).Err()
			return
		}

		now := time.Now()
		record.Status = StatusCompleted
		record.ResponseCode = status
		record.CompletedAt = &now
		if err := saveRecord(ctx, config.Redis, redisKey, record, config.TTL); err != nil {
			config.Logger.Warn("failed to save submission record",
				zap.String("submission_id", key),
				zap.Error(err),
			)
		}
	}
}

func rejectDuplicate(c *gin.Context) {
	_ = c.Error(ErrDuplicateSubmission)
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		response.Conflict(c, "DUPLICATE_SUBMISSION", duplicateMessage)
	} else {
		c.String(http.StatusConflict, duplicateMessage)
	}
	c.Abort()
}

// GetSubmissionID returns the submission id accepted by the guard
func GetSubmissionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextKeySubmissionID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// CheckSubmission returns the stored record for a submission id
func CheckSubmission(ctx context.Context, rdb RedisClient, id string) (*SubmissionRecord, error) {
	result, err := rdb.Get(ctx, SubmissionKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}

	var record SubmissionRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func trySetRecord(ctx context.Context, rdb RedisClient, key string, record *SubmissionRecord, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return false, err
	}
	return rdb.SetNX(ctx, key, string(data), ttl).Result()
}

func saveRecord(ctx context.Context, rdb RedisClient, key string, record *SubmissionRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, string(data), ttl).Err()
}
