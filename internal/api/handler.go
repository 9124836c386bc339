package api

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/femora/internal/logger"
	"github.com/terraincognita07/femora/internal/models"
	"github.com/terraincognita07/femora/internal/services"
)

const (
	authTokenTTL = 30 * 24 * time.Hour

	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute

	defaultRequestTimeout = 10 * time.Second
)

type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (models.User, error)
	Authenticate(ctx context.Context, email string, password string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	ChangePassword(ctx context.Context, userID uint, currentPassword string, newPassword string) error
}

type CycleService interface {
	Create(ctx context.Context, userID uint, input services.CycleInput) (models.Cycle, error)
	List(ctx context.Context, userID uint) ([]models.Cycle, error)
	Stats(ctx context.Context, userID uint) (services.CycleStats, error)
}

type DischargeService interface {
	Create(ctx context.Context, userID uint, input services.DischargeInput) (models.Discharge, error)
	List(ctx context.Context, userID uint) ([]models.Discharge, error)
	Patterns(ctx context.Context, userID uint, now time.Time) (services.DischargePatternSummary, error)
	Alerts(ctx context.Context, userID uint) ([]services.Alert, error)
}

type InsightService interface {
	Generate(ctx context.Context, userID uint) ([]services.Insight, error)
}

type ChatReplier interface {
	Reply(ctx context.Context, message string) string
}

// Dependencies lists everything the HTTP layer needs. Location is used to
// interpret date-only request values.
type Dependencies struct {
	Auth           AuthService
	Cycles         CycleService
	Discharges     DischargeService
	Insights       InsightService
	Chat           ChatReplier
	Logger         *logger.Logger
	SecretKey      string
	Location       *time.Location
	RequestTimeout time.Duration
}

type Handler struct {
	auth           AuthService
	cycles         CycleService
	discharges     DischargeService
	insights       InsightService
	chat           ChatReplier
	logger         *logger.Logger
	secretKey      []byte
	location       *time.Location
	requestTimeout time.Duration
	validate       *validator.Validate
	loginLimiter   *attemptLimiter
	now            func() time.Time
}

func NewHandler(deps Dependencies) (*Handler, error) {
	switch {
	case deps.Auth == nil:
		return nil, errors.New("auth service is required")
	case deps.Cycles == nil:
		return nil, errors.New("cycle service is required")
	case deps.Discharges == nil:
		return nil, errors.New("discharge service is required")
	case deps.Insights == nil:
		return nil, errors.New("insight service is required")
	case deps.Chat == nil:
		return nil, errors.New("chat client is required")
	case deps.SecretKey == "":
		return nil, errors.New("secret key is required")
	}

	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	timeout := deps.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}

	validate, err := newRequestValidator()
	if err != nil {
		return nil, err
	}

	return &Handler{
		auth:           deps.Auth,
		cycles:         deps.Cycles,
		discharges:     deps.Discharges,
		insights:       deps.Insights,
		chat:           deps.Chat,
		logger:         log,
		secretKey:      []byte(deps.SecretKey),
		location:       location,
		requestTimeout: timeout,
		validate:       validate,
		loginLimiter:   newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:            time.Now,
	}, nil
}
