package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/postgres"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/repository"
	gDto "github.com/isaaccomputerscience/isaac-api-sub002/shared/dto"
)

const selectByID = `SELECT .* FROM events\s+WHERE .*events\.id = \$1`

var eventColumns = []string{"id", "title", "capacity", "start_date", "end_date", "created_at", "updated_at"}

func eventRow(capacity int) *sqlmock.Rows {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	return sqlmock.NewRows(eventColumns).AddRow("ev1", "Physics masterclass", capacity, start, nil, start, start)
}

func TestGetReadsReplicaAndGetFreshReadsPrimary(t *testing.T) {
	replica, replicaMock, err := sqlmock.New()
	require.NoError(t, err)

	defer replica.Close()

	primary, primaryMock, err := sqlmock.New()
	require.NoError(t, err)

	defer primary.Close()

	conn := &postgres.Connection{Read: sqlx.NewDb(replica, "postgres"), Write: sqlx.NewDb(primary, "postgres")}
	repo := repository.New(conn, otelMocks.NewOtel())
	filter := gDto.And(gDto.Eq(model.TableName, model.FieldID, "ev1"))

	replicaMock.ExpectPrepare(selectByID).ExpectQuery().WithArgs("ev1").WillReturnRows(eventRow(10))
	primaryMock.ExpectPrepare(selectByID).ExpectQuery().WithArgs("ev1").WillReturnRows(eventRow(12))

	stale, err := repo.Get(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 10, stale.Capacity)
	assert.Nil(t, stale.EndDate)

	fresh, err := repo.GetFresh(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 12, fresh.Capacity)

	assert.NoError(t, replicaMock.ExpectationsWereMet())
	assert.NoError(t, primaryMock.ExpectationsWereMet())
}

func TestGetFreshMissingEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer db.Close()

	conn := &postgres.Connection{Read: sqlx.NewDb(db, "postgres"), Write: sqlx.NewDb(db, "postgres")}
	repo := repository.New(conn, otelMocks.NewOtel())

	mock.ExpectPrepare(selectByID).ExpectQuery().WithArgs("missing").WillReturnRows(sqlmock.NewRows(eventColumns))

	got, err := repo.GetFresh(context.Background(), gDto.And(gDto.Eq(model.TableName, model.FieldID, "missing")))
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
