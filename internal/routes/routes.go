package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/haguru/sakura/internal/apperrors"
	"github.com/haguru/sakura/internal/interfaces"
	"github.com/haguru/sakura/internal/middleware"
	"github.com/haguru/sakura/internal/models/dto"
	"github.com/haguru/sakura/pkg/response"

	structValidator "github.com/go-playground/validator/v10"
)

type Route struct {
	Metrics        interfaces.Metrics
	AccountService interfaces.AccountService
	Store          interfaces.UserRepository
	Logger         interfaces.Logger
	validator      *structValidator.Validate
	protect        interfaces.Middleware
}

// NewRoute creates a new Route instance and registers its metrics when metrics is non-nil.
// protect guards the profile operations.
func NewRoute(metrics interfaces.Metrics, accountService interfaces.AccountService, store interfaces.UserRepository,
	protect interfaces.Middleware, validator *structValidator.Validate, logger interfaces.Logger,
) *Route {
	if metrics != nil {
		metrics.RegisterCounter(UsersRegisteredTotal, UsersRegisteredTotalHelp)
		metrics.RegisterCounterVec(RequestsTotal, RequestsTotalHelp, []string{"operation", "outcome"})
		metrics.RegisterHistogramVec(RequestDurationSeconds, RequestDurationSecondsHelp, RequestDurationSecondsBuckets, []string{"operation"})
	}

	return &Route{
		Metrics:        metrics,
		AccountService: accountService,
		Store:          store,
		Logger:         logger,
		validator:      validator,
		protect:        protect,
	}
}

// Register handles POST /register.
func (r *Route) Register(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.NotFound(w, req)
		return
	}
	start := time.Now()

	registerRequest := &dto.RegisterRequestDTO{}
	if !r.decode(w, req, OperationRegister, registerRequest) {
		return
	}
	if err := r.validator.Struct(registerRequest); err != nil {
		r.fail(w, req, OperationRegister, apperrors.Validation(ErrAllFieldsRequired))
		return
	}

	user, err := r.AccountService.Register(req.Context(), registerRequest.Username, registerRequest.Email, registerRequest.Password)
	if err != nil {
		r.fail(w, req, OperationRegister, err)
		return
	}

	r.succeed(OperationRegister, start)
	if r.Metrics != nil {
		r.Metrics.IncCounter(UsersRegisteredTotal)
	}
	response.WriteJSON(w, http.StatusCreated, &dto.UserResponseDTO{Message: MsgUserRegistered, User: user})
}

// Login handles POST /login.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.NotFound(w, req)
		return
	}
	start := time.Now()

	loginRequest := &dto.LoginRequestDTO{}
	if !r.decode(w, req, OperationLogin, loginRequest) {
		return
	}
	if err := r.validator.Struct(loginRequest); err != nil {
		r.fail(w, req, OperationLogin, apperrors.Validation(ErrCredentialsRequired))
		return
	}

	user, err := r.AccountService.Authenticate(req.Context(), loginRequest.Email, loginRequest.Password)
	if err != nil {
		r.fail(w, req, OperationLogin, err)
		return
	}

	r.succeed(OperationLogin, start)
	response.WriteJSON(w, http.StatusOK, &dto.UserResponseDTO{Message: MsgLoginSuccessful, User: user})
}

// Profile dispatches GET and PATCH /profile through the access gate.
// Other methods are unknown routes and skip the gate.
func (r *Route) Profile(w http.ResponseWriter, req *http.Request) {
	var next http.HandlerFunc
	switch req.Method {
	case http.MethodGet:
		next = r.ListProfiles
	case http.MethodPatch:
		next = r.UpdateUsername
	default:
		r.NotFound(w, req)
		return
	}
	if r.protect != nil {
		r.protect(next).ServeHTTP(w, req)
		return
	}
	next(w, req)
}

func (r *Route) ListProfiles(w http.ResponseWriter, req *http.Request) {
	start := time.Now()

	users, err := r.AccountService.ListProfiles(req.Context())
	if err != nil {
		r.fail(w, req, OperationListProfiles, err)
		return
	}

	r.succeed(OperationListProfiles, start)
	response.WriteJSON(w, http.StatusOK, &dto.ProfileListResponseDTO{Users: users})
}

func (r *Route) UpdateUsername(w http.ResponseWriter, req *http.Request) {
	start := time.Now()

	updateRequest := &dto.UpdateUsernameRequestDTO{}
	if !r.decode(w, req, OperationUpdateUsername, updateRequest) {
		return
	}
	if err := r.validator.Struct(updateRequest); err != nil {
		r.fail(w, req, OperationUpdateUsername, apperrors.Validation(ErrUserIDRequired))
		return
	}

	user, err := r.AccountService.UpdateUsername(req.Context(), updateRequest.UserID, updateRequest.Username)
	if err != nil {
		r.fail(w, req, OperationUpdateUsername, err)
		return
	}

	r.succeed(OperationUpdateUsername, start)
	response.WriteJSON(w, http.StatusOK, &dto.UserResponseDTO{Message: MsgUsernameUpdated, User: user})
}

// Health reports whether the store can be read.
func (r *Route) Health(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.NotFound(w, req)
		return
	}
	if _, err := r.Store.Load(req.Context()); err != nil {
		r.Logger.Error("health check failed", "error", err, "request_id", middleware.RequestIDFromContext(req.Context()))
		response.WriteJSON(w, http.StatusInternalServerError, &dto.HealthResponseDTO{Status: StatusUnavailable})
		return
	}
	response.WriteJSON(w, http.StatusOK, &dto.HealthResponseDTO{Status: StatusOK})
}

func (r *Route) NotFound(w http.ResponseWriter, req *http.Request) {
	response.WriteError(w, http.StatusNotFound, MsgRouteNotFound)
}

// decode checks the content type and reads the JSON body into dst.
// On failure it writes the 400 response and returns false.
func (r *Route) decode(w http.ResponseWriter, req *http.Request, operation string, dst interface{}) bool {
	mediaType, _, err := mime.ParseMediaType(req.Header.Get(response.ContentTypeHeader))
	if err != nil || !strings.EqualFold(mediaType, response.ContentTypeJSON) {
		r.fail(w, req, operation, apperrors.Validation(ErrInvalidContentType))
		return false
	}

	dec := json.NewDecoder(req.Body)
	err = dec.Decode(dst)
	if err == nil {
		// exactly one JSON value; anything after it is malformed
		if extra := dec.Decode(&struct{}{}); extra != io.EOF {
			err = extra
			if err == nil {
				err = errors.New("unexpected data after JSON body")
			}
		}
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			r.fail(w, req, operation, apperrors.Validation(ErrRequestBodyTooLarge))
			return false
		}
		r.fail(w, req, operation, apperrors.Validation(ErrInvalidRequestBody))
		return false
	}
	return true
}

func (r *Route) fail(w http.ResponseWriter, req *http.Request, operation string, err error) {
	status, message := apperrors.Response(err)
	if status >= http.StatusInternalServerError {
		r.Logger.Error("request failed", "operation", operation, "error", err, "request_id", middleware.RequestIDFromContext(req.Context()))
	}
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(RequestsTotal, operation, strings.ToLower(string(apperrors.KindOf(err))))
	}
	response.WriteError(w, status, message)
}

func (r *Route) succeed(operation string, start time.Time) {
	if r.Metrics != nil {
		r.Metrics.IncCounterVec(RequestsTotal, operation, OutcomeSuccess)
		r.Metrics.ObserveHistogramVec(RequestDurationSeconds, time.Since(start).Seconds(), operation)
	}
}

// AddRoutes registers the account routes under prefix, the health route at the
// root and the not found fallback. limitLogin, when non-nil, wraps the login handler.
func (r *Route) AddRoutes(srv interfaces.Server, prefix string, limitLogin interfaces.Middleware) error {
	login := http.Handler(http.HandlerFunc(r.Login))
	if limitLogin != nil {
		login = limitLogin(login)
	}

	routes := []struct {
		path    string
		handler func(http.ResponseWriter, *http.Request)
	}{
		{prefix + RegisterRouteAPI, r.Register},
		{prefix + LoginRouteAPI, login.ServeHTTP},
		{prefix + ProfileRouteAPI, r.Profile},
		{HealthRouteAPI, r.Health},
	}
	for _, rt := range routes {
		if err := srv.AddRoute(rt.path, rt.handler); err != nil {
			return fmt.Errorf("failed to add route %s: %w", rt.path, err)
		}
	}

	srv.SetNotFound(r.NotFound)
	return nil
}
