package middlewares

import (
	"encoding/json"
	"errors"
	"time"

	"order-tracker/i18n"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionLocal = "session"
	langLocal    = "lang"
	flashKey     = "flashes"
	langKey      = "lang"
)

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message. Message is an untranslated catalog key; Args fill its verbs.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
	Args    []string  `json:"args,omitempty"`
}

// Text renders the flash in lang.
func (f Flash) Text(lang string) string {
	args := make([]any, len(f.Args))
	for i, a := range f.Args {
		args[i] = a
	}
	return i18n.T(lang, f.Message, args...)
}

// SessionCookie names the cookie holding the session id.
const SessionCookie = "order_tracker_session"

var (
	store       *session.Store
	defaultLang = "zh"
)

// ConfigureSessions creates the session store. Call once before serving.
func ConfigureSessions(ttl time.Duration, lang string, secure bool) {
	store = session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + SessionCookie,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})
	if i18n.Normalize(lang) != "" {
		defaultLang = lang
	}
}

// Sessions loads the session once per request and saves it after the handler chain.
func Sessions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return errors.New("session store not configured")
		}
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		c.Locals(sessionLocal, sess)

		err = c.Next()

		// Save releases the session; keep the language for the error handler.
		c.Locals(langLocal, Lang(c))
		c.Locals(sessionLocal, nil)

		// Anonymous requests that stored nothing get no session.
		if sess.Fresh() && len(sess.Keys()) == 0 {
			return err
		}
		if saveErr := sess.Save(); saveErr != nil && err == nil {
			err = saveErr
		}
		return err
	}
}

func current(c *fiber.Ctx) (*session.Session, error) {
	sess, ok := c.Locals(sessionLocal).(*session.Session)
	if !ok || sess == nil {
		return nil, errors.New("no session for request")
	}
	return sess, nil
}

func readFlashes(sess *session.Session) []Flash {
	raw, _ := sess.Get(flashKey).(string)
	if raw == "" {
		return nil
	}
	var out []Flash
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *fiber.Ctx, kind FlashKind, message string, args ...string) error {
	sess, err := current(c)
	if err != nil {
		return err
	}
	f := Flash{Kind: kind, Message: message, Args: args}
	raw, err := json.Marshal(append(readFlashes(sess), f))
	if err != nil {
		return err
	}
	sess.Set(flashKey, string(raw))
	return nil
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(c *fiber.Ctx) []Flash {
	sess, err := current(c)
	if err != nil {
		return nil
	}
	out := readFlashes(sess)
	if len(out) > 0 {
		sess.Delete(flashKey)
	}
	return out
}

// Lang returns the session language, falling back to Accept-Language and then the default.
func Lang(c *fiber.Ctx) string {
	if sess, err := current(c); err == nil {
		if lang, _ := sess.Get(langKey).(string); i18n.Normalize(lang) != "" {
			return lang
		}
	} else if lang, _ := c.Locals(langLocal).(string); lang != "" {
		return lang
	}
	return i18n.FromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage), defaultLang)
}

// SetLang stores lang when it is supported and reports whether it did.
func SetLang(c *fiber.Ctx, lang string) bool {
	lang = i18n.Normalize(lang)
	if lang == "" {
		return false
	}
	sess, err := current(c)
	if err != nil {
		return false
	}
	sess.Set(langKey, lang)
	return true
}
