package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/access"
	"github.com/umeedfoundation/console/core/session"
	"github.com/umeedfoundation/console/core/user"
)

const contextAccessKey = "access"

var errNoAccessInCtx = errors.New("access context not found in echo.Context")

// sessionClaims carry the persisted session envelope in a signed cookie.
type sessionClaims struct {
	jwt.StandardClaims
	Session string `json:"ses"`
}

// cookieStorage is the session.Storage of one request: items live in HS256-signed cookies.
type cookieStorage struct {
	ctx    echo.Context
	conf   *core.Config
	key    []byte
	values map[string]*string // set or removed during this request; nil = removed
}

var _ session.Storage = (*cookieStorage)(nil)

func newCookieStorage(ctx echo.Context, conf *core.Config) *cookieStorage {
	return &cookieStorage{
		ctx:    ctx,
		conf:   conf,
		key:    []byte(conf.SecretKey),
		values: make(map[string]*string),
	}
}

func (s *cookieStorage) cookieName(key string) string {
	if key == session.SlotKey && s.conf.Session.CookieName != "" {
		return s.conf.Session.CookieName
	}
	return key
}

// GetItem reports an unverifiable cookie as present but empty, so that the
// session restore discards it and clears the cookie.
func (s *cookieStorage) GetItem(key string) (string, bool, error) {
	if v, ok := s.values[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	cookie, err := s.ctx.Cookie(s.cookieName(key))
	if err != nil || cookie.Value == "" {
		return "", false, nil
	}
	claims := new(sessionClaims)
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return "", true, nil
	}
	return claims.Session, true, nil
}

func (s *cookieStorage) SetItem(key, value string) error {
	now := time.Now()
	claims := sessionClaims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    s.conf.AppName,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.conf.Session.MaxAge).Unix(),
		},
		Session: value,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return errors.Wrap(err, "signing session cookie")
	}

	s.ctx.SetCookie(s.newCookie(key, signed, int(s.conf.Session.MaxAge/time.Second)))
	s.values[key] = &value
	return nil
}

func (s *cookieStorage) RemoveItem(key string) error {
	s.ctx.SetCookie(s.newCookie(key, "", -1))
	s.values[key] = nil
	return nil
}

func (s *cookieStorage) newCookie(key, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.cookieName(key),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.conf.Session.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionMiddleware restores the access context of the request from its cookie.
func sessionMiddleware(conf *core.Config, logger core.Logger, verifier access.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			store := session.NewStore(newCookieStorage(ctx, conf), logger)
			ctx.Set(contextAccessKey, access.Open(verifier, store, logger))
			return next(ctx)
		}
	}
}

func getContextAccess(ctx echo.Context) (*access.Context, error) {
	if ac, ok := ctx.Get(contextAccessKey).(*access.Context); ok {
		return ac, nil
	}
	return nil, errNoAccessInCtx
}

// getContextIdentity returns the signed-in identity, or errUnauthorized.
func getContextIdentity(ctx echo.Context) (user.Identity, error) {
	ac, err := getContextAccess(ctx)
	if err != nil {
		return user.Identity{}, err
	}
	if cur := ac.Current(); cur.IsAuthenticated() {
		return *cur.Identity, nil
	}
	return user.Identity{}, errUnauthorized
}
