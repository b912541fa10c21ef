package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"order-tracker/database"
	"order-tracker/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IdempotencyField is the hidden form field carrying the submission key.
const IdempotencyField = "_idem"

var errReplay = errors.New("idempotent replay")

// Idempotency makes a POST carrying an Idempotency-Key header or an _idem form field run once.
// A completed key replays the stored redirect with a flash instead of running the handler again.
// It uses its own short transactions, so run it BEFORE RequestTx().
func Idempotency() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			key = strings.TrimSpace(c.FormValue(IdempotencyField))
		}
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return fiber.NewError(fiber.StatusBadRequest, "Idempotency-Key too long")
		}

		userID, _ := c.Locals("userID").(string)
		if userID == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "auth context missing")
		}

		method := c.Method()
		path := c.Path()

		// Build deterministic request hash: method|path|user
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(path))
		h.Write([]byte{'\n'})
		h.Write([]byte(userID))
		reqHash := hex.EncodeToString(h.Sum(nil))

		// ---- Phase 1: read/create "pending" under a short TX
		var existing models.IdempotencyKey
		err := database.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
			err := tx.Where("idem_key = ?", key).First(&existing).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusInternalServerError, "idempotency lookup failed")
				}
				rec := models.IdempotencyKey{
					Key:         key,
					RequestHash: reqHash,
					Method:      method,
					Path:        path,
					UserID:      userID,
				}
				if err := tx.Create(&rec).Error; err != nil {
					return fiber.NewError(fiber.StatusConflict, "request already in progress")
				}
				existing = rec
				return nil
			}

			if existing.RequestHash != reqHash {
				return fiber.NewError(fiber.StatusConflict, "Idempotency-Key reuse with different request")
			}
			if existing.ResponseStatus != 0 {
				return errReplay
			}
			return fiber.NewError(fiber.StatusConflict, "request already in progress")
		})
		if errors.Is(err, errReplay) {
			if err := AddFlash(c, FlashInfo, "This form was already submitted."); err != nil {
				return err
			}
			location := existing.ResponseLocation
			if location == "" {
				location = "/dashboard"
			}
			return c.Redirect(location, existing.ResponseStatus)
		}
		if err != nil {
			return err
		}

		// If we reached here, we need to run the handler once.
		if err := c.Next(); err != nil {
			// Free the key so the user can retry.
			if delErr := database.DB.Where("idem_key = ? AND response_status = 0", key).
				Delete(&models.IdempotencyKey{}).Error; delErr != nil {
				zap.L().Warn("idempotency cleanup failed", zap.String("key", key), zap.Error(delErr))
			}
			return err
		}

		// ---- Phase 2: store the outcome
		now := time.Now().UTC()
		status := c.Response().StatusCode()
		location := string(c.Response().Header.Peek(fiber.HeaderLocation))
		if status < 300 || status >= 400 {
			// Only redirects can be replayed; anything else replays as a redirect home.
			status = fiber.StatusFound
			location = ""
		}
		if err := database.DB.Model(&models.IdempotencyKey{}).
			Where("idem_key = ?", key).
			Updates(map[string]any{
				"response_status":   status,
				"response_location": location,
				"completed_at":      &now,
			}).Error; err != nil {
			zap.L().Warn("idempotency store failed", zap.String("key", key), zap.Error(err))
		}

		return nil
	}
}
