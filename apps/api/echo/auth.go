package echoapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/jkuniv/studentportal/core"
	"github.com/jkuniv/studentportal/core/auth"
	"github.com/jkuniv/studentportal/core/student"
)

const tokenContextKey = "studentToken"

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"is_admin,omitempty"`
}

func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    tokenContextKey,
		Claims:        new(Claims),
	}
}

func newClaims(rec student.Student, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   rec.Username,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: rec.Username,
		IsAdmin:  rec.IsAdmin(),
	}
}

// generateToken generates a signed JWT token string representing the claims.
func generateToken(claims *Claims, conf *core.Config) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

const (
	// abandoned challenges are swept after this long
	sessionTTL = 15 * time.Minute
	// a session burning through this many failures must request a new challenge
	sessionMaxFailures = 10
)

var nowFunc = time.Now // mockable

// sessionStore keeps the per-session captcha/auth state server side, keyed
// by an opaque id handed to the client with each challenge. Entries are
// evicted on expiry or after too many failed attempts so abandoned
// challenges cannot pile up for the process lifetime.
type sessionStore struct {
	mu sync.Mutex
	m  map[string]sessionEntry
}

type sessionEntry struct {
	sess      *auth.Session
	createdAt time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[string]sessionEntry)}
}

func (st *sessionStore) create() (string, *auth.Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := nowFunc()
	for id, entry := range st.m {
		if now.Sub(entry.createdAt) > sessionTTL {
			delete(st.m, id)
		}
	}

	id := uuid.New().String()
	sess := auth.NewSession()
	st.m[id] = sessionEntry{sess: sess, createdAt: now}
	return id, sess
}

func (st *sessionStore) get(id string) (*auth.Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.m[id]
	if !ok {
		return nil, false
	}
	if nowFunc().Sub(entry.createdAt) > sessionTTL || entry.sess.FailedAttempts >= sessionMaxFailures {
		delete(st.m, id)
		return nil, false
	}
	return entry.sess, true
}

func (st *sessionStore) drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.m, id)
}

type authApi struct {
	sessions *sessionStore
	opts     *Options
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, sessions *sessionStore, opts *Options) {
	api := authApi{sessions: sessions, opts: opts}

	ag := g.Group("/auth")
	ag.POST("/captcha", api.captcha)
	ag.POST("/login", api.login)
	ag.POST("/logout", api.logout, jwt)
}

// captcha opens a fresh anonymous session and returns its challenge.
func (api *authApi) captcha(ctx echo.Context) error {
	id, sess := api.sessions.create()
	return ctx.JSON(http.StatusOK, CaptchaResponse{
		Session:   id,
		Challenge: sess.Challenge,
	})
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	sess, ok := api.sessions.get(data.Session)
	if !ok {
		return core.NewValidationError(errors.New("unknown captcha session; request a new challenge"))
	}

	if err := sess.Login(api.opts.StudentSvc, data.Username, data.Password, data.Captcha); err != nil {
		switch errors.Cause(err) {
		case auth.ErrCaptchaFailed, auth.ErrInvalidCredentials:
			// the session keeps its failure counter; the client gets the
			// regenerated challenge with the error
			return ctx.JSON(http.StatusBadRequest, LoginFailedResponse{
				Error:          err.Error(),
				FailedAttempts: sess.FailedAttempts,
				Challenge:      sess.Challenge,
			})
		default:
			return errors.Wrap(err, "logging in")
		}
	}

	rec := *sess.Student
	api.sessions.drop(data.Session)

	token, err := generateToken(newClaims(rec, api.opts.Conf), api.opts.Conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Student: rec})
}

func (api *authApi) logout(ctx echo.Context) error {
	// tokens are not tracked server side; logout just acknowledges so the
	// client can discard its token
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "logged out"})
}
