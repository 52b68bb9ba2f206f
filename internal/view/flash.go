package view

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
)

const (
	flashKeySuccess = "flash_success"
	flashKeyError   = "flash_error"

	codecLocalsKey = "flash_codec"
)

// Flashes holds the one-shot messages carried across a redirect.
type Flashes struct {
	Success string
	Error   string
}

// UseFlashes makes codec available to the flash helpers for the request.
// Flash cookies are encoded with it, so a message can not be forged.
func UseFlashes(codec securecookie.Codec) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(codecLocalsKey, codec)
		return c.Next()
	}
}

func flashCodec(c *fiber.Ctx) securecookie.Codec {
	codec, _ := c.Locals(codecLocalsKey).(securecookie.Codec)
	return codec
}

func setFlash(c *fiber.Ctx, key, message string) {
	codec := flashCodec(c)
	if codec == nil {
		log.Warn().Str("flash", key).Msg("flash dropped: no codec installed")
		return
	}

	encoded, err := codec.Encode(key, message)
	if err != nil {
		log.Warn().Err(err).Str("flash", key).Msg("failed to encode flash")
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// SetFlashSuccess sets a success flash message.
func SetFlashSuccess(c *fiber.Ctx, message string) {
	setFlash(c, flashKeySuccess, message)
}

// SetFlashError sets an error flash message.
func SetFlashError(c *fiber.Ctx, message string) {
	setFlash(c, flashKeyError, message)
}

// GetFlashes reads and clears the flash messages. Cookies that do not
// decode are dropped.
func GetFlashes(c *fiber.Ctx) Flashes {
	return Flashes{
		Success: takeFlash(c, flashKeySuccess),
		Error:   takeFlash(c, flashKeyError),
	}
}

func takeFlash(c *fiber.Ctx, key string) string {
	raw := c.Cookies(key)
	if raw == "" {
		return ""
	}
	c.ClearCookie(key)

	codec := flashCodec(c)
	if codec == nil {
		return ""
	}
	var msg string
	if err := codec.Decode(key, raw, &msg); err != nil {
		log.Debug().Err(err).Str("flash", key).Msg("discarding undecodable flash")
		return ""
	}
	return msg
}
