package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/postgres"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	gDto "github.com/isaaccomputerscience/isaac-api-sub002/shared/dto"
	gRepo "github.com/isaaccomputerscience/isaac-api-sub002/shared/repository"
)

// Event reads event metadata. Nothing in this service writes events.
type Event interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error)
	// GetFresh reads from the primary so capacity changes are seen immediately.
	GetFresh(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Event]
	primary gRepo.Repository[model.Event]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	repo := gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repositoryImpl{
		Repository: repo,
		primary:    repo.OnPrimary(),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetFresh(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Event, error) {
	return r.primary.Get(ctx, filter, columns...) //nolint:wrapcheck
}
