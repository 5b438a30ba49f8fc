package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/stockkeeper/internal/auth"
	"github.com/mmynk/stockkeeper/internal/inventory"
	"github.com/mmynk/stockkeeper/internal/middleware"
	"github.com/mmynk/stockkeeper/internal/models"
	"github.com/mmynk/stockkeeper/pkg/api"
)

// AuthService implements the stockkeeper.v1.AuthService procedures.
type AuthService struct {
	controller *inventory.Controller
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(controller *inventory.Controller, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		controller: controller,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Handler returns the path prefix and HTTP handler serving this service.
func (s *AuthService) Handler(opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(api.Codec{}),
		connect.WithInterceptors(middleware.OptionalAuth(s.jwtManager), middleware.LoggingInterceptor()),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(api.RegisterProcedure, connect.NewUnaryHandler(api.RegisterProcedure, s.Register, opts...))
	mux.Handle(api.LoginProcedure, connect.NewUnaryHandler(api.LoginProcedure, s.Login, opts...))
	mux.Handle(api.LogoutProcedure, connect.NewUnaryHandler(api.LogoutProcedure, s.Logout, opts...))
	mux.Handle(api.GetCurrentUserProcedure, connect.NewUnaryHandler(api.GetCurrentUserProcedure, s.GetCurrentUser, opts...))
	return "/" + api.AuthServiceName + "/", mux
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "username", req.Msg.Username)

	created, err := s.controller.Register(ctx, req.Msg.Username, req.Msg.Password, req.Msg.PhoneNumber)
	if err != nil {
		s.logger.Warn("Registration failed", "username", req.Msg.Username, "error", err)
		return nil, toConnectError(err)
	}
	if !created {
		return nil, connect.NewError(connect.CodeAlreadyExists, errUsernameTaken)
	}

	s.logger.Info("User registered successfully", "username", req.Msg.Username)
	return connect.NewResponse(&api.RegisterResponse{}), nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "username", req.Msg.Username)

	userID, err := s.controller.Authenticate(ctx, req.Msg.Username, req.Msg.Password)
	if err != nil {
		return nil, toConnectError(err)
	}
	if userID == models.NoUserID {
		s.logger.Warn("Login failed", "username", req.Msg.Username)
		return nil, connect.NewError(connect.CodeUnauthenticated, errBadLogin)
	}

	user, err := s.controller.GetUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, errBadLogin)
	}

	token, err := s.jwtManager.Generate(auth.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{
		User:  toAPIUser(user),
		Token: token,
	}), nil
}

// Logout ends the caller's session. Tokens are stateless, so the client
// discards its copy and the server has nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	session, _ := auth.SessionFromContext(ctx)
	s.logger.Info("Logout request", "user_id", session.UserID)
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the authenticated user's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.controller.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if user == nil {
		return nil, connect.NewError(connect.CodeNotFound, errUserNotFound)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:          u.ID,
		Username:    u.Username,
		SMSEnabled:  u.SMSEnabled,
		PhoneNumber: u.PhoneNumber,
	}
}
