package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDepartmentPostgres(db)
	ctx := context.Background()

	t.Run("ordered by name", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "name", "color", "created_at"}).
			AddRow("d1", "Finance", "#f59e0b", now).
			AddRow("d2", "Operations", "#10b981", now)

		mock.ExpectQuery("SELECT (.+) FROM departments ORDER BY name ASC").
			WillReturnRows(rows)

		depts, err := repo.List(ctx)

		assert.NoError(t, err)
		require.Len(t, depts, 2)
		assert.Equal(t, "Finance", depts[0].Name)
		assert.Equal(t, "Operations", depts[1].Name)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM departments").
			WillReturnError(errors.New("db fail"))

		depts, err := repo.List(ctx)

		assert.Error(t, err)
		assert.Nil(t, depts)
	})
}
