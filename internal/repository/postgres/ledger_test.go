package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"harambee-backend/internal/repository/postgres"
)

func TestLedgerRepository_ApplyConfirmed(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewLedgerRepository(db)
	ctx := context.Background()

	t.Run("IncrementsProjectAndMemberInOneTransaction", func(t *testing.T) {
		projectID := int32(5)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE projects SET collected_cents = collected_cents \\+ \\$1 WHERE id = \\$2").
			WithArgs(int64(15000), projectID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE group_members SET contributed_cents = contributed_cents \\+ \\$1 WHERE group_id = \\$2 AND user_id = \\$3").
			WithArgs(int64(15000), int32(1), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyConfirmed(ctx, 1, 2, &projectID, 15000)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SkipsProjectIncrementWithoutProject", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE group_members SET contributed_cents = contributed_cents \\+ \\$1 WHERE group_id = \\$2 AND user_id = \\$3").
			WithArgs(int64(5000), int32(1), int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyConfirmed(ctx, 1, 2, nil, 5000)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingMemberRowIsNotAnError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE group_members SET contributed_cents").
			WithArgs(int64(5000), int32(1), int32(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.ApplyConfirmed(ctx, 1, 99, nil, 5000)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
