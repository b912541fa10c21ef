package middlewares

import (
	"errors"
	"strings"
	"sync"
	"time"

	"order-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
	// AuthCookie carries the signed token for browser sessions.
	AuthCookie = "jwt"
)

// Claims is our JWT payload (subject=userID, plus username and role).
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	secretMu  sync.RWMutex
	jwtSecret []byte
	tokenTTL  = 24 * time.Hour
)

// ConfigureAuth sets the signing secret and token lifetime.
func ConfigureAuth(secret string, ttl time.Duration) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("JWT secret not configured (set JWT_SECRET)")
	}
	secretMu.Lock()
	defer secretMu.Unlock()
	jwtSecret = []byte(secret)
	if ttl > 0 {
		tokenTTL = ttl
	}
	return nil
}

func signingKey() ([]byte, time.Duration, error) {
	secretMu.RLock()
	defer secretMu.RUnlock()
	if len(jwtSecret) == 0 {
		return nil, 0, errors.New("JWT secret not configured (set JWT_SECRET)")
	}
	return jwtSecret, tokenTTL, nil
}

// GenerateJWT signs a new HS256 token for user.
func GenerateJWT(user models.User) (string, time.Time, error) {
	secret, ttl, err := signingKey()
	if err != nil {
		return "", time.Time{}, err
	}
	now := time.Now()
	expires := now.Add(ttl)
	claims := &Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// ParseJWT validates raw and returns its claims.
func ParseJWT(raw string) (*Claims, error) {
	secret, _, err := signingKey()
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	if strings.TrimSpace(claims.Subject) == "" || strings.TrimSpace(claims.Username) == "" {
		return nil, errors.New("token missing subject/username")
	}
	return &claims, nil
}

func rawToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies(AuthCookie)); v != "" {
		return v
	}
	h := c.Get(authHeader)
	if len(h) > len(bearerPrefix) && strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(h[len(bearerPrefix):])
	}
	return ""
}

// IsAuthenticated accepts the auth cookie (or a Bearer header) and populates
// c.Locals("userID","username","role"). Anonymous requests are sent to /login.
func IsAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := rawToken(c)
		if raw == "" {
			return c.Redirect("/login")
		}
		claims, err := ParseJWT(raw)
		if err != nil {
			ClearAuthCookie(c)
			return c.Redirect("/login")
		}

		c.Locals("userID", claims.Subject)
		c.Locals("username", claims.Username)
		c.Locals("role", string(claims.Role))

		return c.Next()
	}
}

// SetAuthCookie stores token as an HttpOnly cookie.
func SetAuthCookie(c *fiber.Ctx, token string, expires time.Time, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// CurrentUsername returns the username stored by IsAuthenticated.
func CurrentUsername(c *fiber.Ctx) string {
	s, _ := c.Locals("username").(string)
	return s
}

func CurrentRole(c *fiber.Ctx) models.Role {
	s, _ := c.Locals("role").(string)
	return models.Role(s)
}
