package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
)

const defaultMaxAge = 7 * 24 * time.Hour

type cookieValue struct {
	Token string
}

// Store keeps the bearer token in a signed (and, with a block key,
// encrypted) cookie on the client.
type Store struct {
	name   string
	codec  *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewStore creates a cookie store. blockKey may be empty to sign without
// encrypting.
func NewStore(name string, hashKey, blockKey []byte, secure bool) *Store {
	if len(blockKey) == 0 {
		blockKey = nil
	}
	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(int(defaultMaxAge.Seconds()))

	return &Store{
		name:   name,
		codec:  codec,
		secure: secure,
		maxAge: defaultMaxAge,
	}
}

// Load returns the session carried by the request. A missing, tampered or
// expired cookie yields an unauthenticated session, never an error.
func (s *Store) Load(c *fiber.Ctx) *Session {
	raw := c.Cookies(s.name)
	if raw == "" {
		return &Session{}
	}

	var v cookieValue
	if err := s.codec.Decode(s.name, raw, &v); err != nil {
		log.Debug().Err(err).Msg("discarding undecodable session cookie")
		return &Session{}
	}
	return &Session{Token: v.Token}
}

// Save writes token to the response cookie.
func (s *Store) Save(c *fiber.Ctx, token string) error {
	encoded, err := s.codec.Encode(s.name, cookieValue{Token: token})
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		Expires:  time.Now().Add(s.maxAge),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// Clear expires the cookie.
func (s *Store) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   s.secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// Codec returns the cookie codec, for other cookies that must be signed
// with the same keys.
func (s *Store) Codec() *securecookie.SecureCookie {
	return s.codec
}

func (s *Store) Name() string {
	return s.name
}
