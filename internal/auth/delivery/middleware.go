package delivery

import (
	"errors"
	"net/http"
	"strings"

	authdomain "qisqa-backend/internal/auth/domain"
	"qisqa-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
)

// ErrMissingCredential means the request carried neither a bearer token nor a session cookie.
var ErrMissingCredential = errors.New("no credential in request")

// ErrMalformedHeader means an Authorization header was present but not "Bearer <token>".
var ErrMalformedHeader = errors.New("invalid authorization header format")

const userContextKey = "user"

// IdentityResolver resolves the caller of an HTTP request.
type IdentityResolver interface {
	Resolve(r *http.Request) (*authdomain.User, error)
}

// RequestResolver accepts either transport: an Authorization bearer header,
// or the session cookie set by the web client. The header wins when both exist.
type RequestResolver struct {
	authUsecase usecase.AuthUsecase
	cookieName  string
}

func NewRequestResolver(authUsecase usecase.AuthUsecase, cookieName string) *RequestResolver {
	return &RequestResolver{authUsecase: authUsecase, cookieName: cookieName}
}

func (r *RequestResolver) Resolve(req *http.Request) (*authdomain.User, error) {
	token, err := r.token(req)
	if err != nil {
		return nil, err
	}
	return r.authUsecase.ValidateToken(token)
}

func (r *RequestResolver) token(req *http.Request) (string, error) {
	if authHeader := req.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", ErrMalformedHeader
		}
		return parts[1], nil
	}

	if r.cookieName != "" {
		if cookie, err := req.Cookie(r.cookieName); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}
	return "", ErrMissingCredential
}

func AuthMiddleware(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c.Request)
		if err != nil {
			log.Debug().Str("component", "auth").Err(err).Str("path", c.FullPath()).Msg("request rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authdomain.UnauthenticatedMessage})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the identity stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*authdomain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*authdomain.User)
	return user, ok && user != nil
}
