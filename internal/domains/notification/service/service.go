package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/model"
	userService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/user/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

// ErrRecipientDeleted is returned when the addressed user account was deleted.
var ErrRecipientDeleted = errors.New("recipient account deleted")

// Notifier sends a templated message to a user. Callers treat it as best effort.
type Notifier interface {
	Send(ctx context.Context, userID, templateID string, data map[string]any) error
}

type serviceImpl struct {
	identity  userService.Identity
	publisher Publisher
	otel      otel.Otel
	clock     timezone.Clock
	newID     func() string
}

func New(identity userService.Identity, publisher Publisher, otel otel.Otel) Notifier {
	return &serviceImpl{
		identity:  identity,
		publisher: publisher,
		otel:      otel,
		clock:     timezone.Now,
		newID:     uuid.NewString,
	}
}

func (s *serviceImpl) Send(ctx context.Context, userID, templateID string, msgContext map[string]any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".notification.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"user.id": userID, "template.id": templateID})

	user, err := s.identity.ResolveUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve notification recipient: %w", err)
	}

	if user.Deleted {
		return fmt.Errorf("%w: %s", ErrRecipientDeleted, userID)
	}

	msg := model.Message{
		ID:         s.newID(),
		TemplateID: templateID,
		Recipient: model.Recipient{
			UserID: user.ID,
			Email:  user.Email,
			Name:   user.DisplayName(),
		},
		Context:   msgContext,
		CreatedAt: s.clock(),
	}

	if err = s.publisher.Publish(ctx, msg); err != nil {
		log.Error().Err(err).Str("userID", userID).Str("templateID", templateID).Msg("failed to publish notification")

		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}
