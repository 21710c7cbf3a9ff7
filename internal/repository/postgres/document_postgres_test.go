package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"docboard/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docCols = []string{
	"id", "name", "type", "department_id", "dep_name",
	"last_review", "next_review", "status",
	"description", "file_url", "file_name", "file_size",
	"created_by", "created_at", "updated_at",
}

type driverValue = driver.Value

func docRow(id string, created time.Time) []driverValue {
	next := created.AddDate(1, 0, 0)
	return []driverValue{
		id, "Fire Safety", "Policy", "dept-1", "Operations",
		nil, next, "Draft",
		"", "", "", int64(0),
		"user-1", created, created,
	}
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	next := now.AddDate(1, 0, 0)
	draft := model.DocumentDraft{
		Name:         "Fire Safety",
		Type:         model.TypePolicy,
		DepartmentID: "dept-1",
		NextReview:   next,
		Status:       model.StatusDraft,
	}

	rows := sqlmock.NewRows(docCols).AddRow(
		"gen-id", draft.Name, string(draft.Type), draft.DepartmentID, "Operations",
		nil, next, string(draft.Status),
		"", "", "", int64(0),
		"user-1", now, now,
	)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(draft.Name, string(draft.Type), draft.DepartmentID, sqlmock.AnyArg(), next, string(draft.Status), "", "user-1").
		WillReturnRows(rows)

	doc, err := repo.Create(ctx, draft, "user-1")

	assert.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "gen-id", doc.ID)
	assert.Equal(t, "Operations", doc.DepartmentName)
	assert.Equal(t, "user-1", doc.CreatedBy)
	assert.Nil(t, doc.LastReview)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows(docCols).AddRow(docRow("doc-1", now)...)

		mock.ExpectQuery("SELECT (.+) FROM documents d").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		assert.Equal(t, model.TypePolicy, doc.Type)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents d").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("rows with nullable fields", func(t *testing.T) {
		now := time.Now().UTC()
		last := now.AddDate(0, -6, 0)
		rows := sqlmock.NewRows(docCols).
			AddRow(
				"doc-2", "Onboarding SOP", "SOP", "dept-2", "Human Resources",
				last, now.AddDate(0, 6, 0), "Current",
				"how to onboard", "https://files/u/doc-2.pdf", "onboarding.pdf", int64(2048),
				"user-1", now, now,
			).
			AddRow(docRow("doc-1", now.AddDate(0, 0, -1))...)

		mock.ExpectQuery("SELECT (.+) FROM documents d(.+)ORDER BY d.created_at DESC").
			WillReturnRows(rows)

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "doc-2", docs[0].ID)
		require.NotNil(t, docs[0].LastReview)
		assert.Equal(t, last, docs[0].LastReview.UTC())
		assert.Equal(t, "onboarding.pdf", docs[0].FileName)
		assert.Nil(t, docs[1].LastReview)
	})

	t.Run("empty result", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents d").
			WillReturnRows(sqlmock.NewRows(docCols))

		docs, err := repo.List(ctx)

		assert.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("provided fields only", func(t *testing.T) {
		name := "Renamed"
		status := model.StatusUnderReview

		mock.ExpectExec(`UPDATE documents SET updated_at = now\(\), name = \$1, status = \$2 WHERE id = \$3`).
			WithArgs(name, string(status), "doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, "doc-1", model.DocumentUpdate{Name: &name, Status: &status})

		assert.NoError(t, err)
	})

	t.Run("review dates sent as UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+7", 7*3600)
		next := time.Date(2025, 3, 1, 9, 0, 0, 0, loc)

		mock.ExpectExec(`UPDATE documents SET updated_at = now\(\), next_review = \$1 WHERE id = \$2`).
			WithArgs(next.UTC(), "doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, "doc-1", model.DocumentUpdate{NextReview: &next})

		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		name := "Renamed"
		mock.ExpectExec(`UPDATE documents SET`).
			WithArgs(name, "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, "missing", model.DocumentUpdate{Name: &name})

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestDocumentPostgres_AttachFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE documents\s+SET file_url = \$1, file_name = \$2, file_size = \$3, updated_at = now\(\)`).
		WithArgs("https://files/u/doc-1.pdf", "policy.pdf", int64(512), "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.AttachFile(ctx, "doc-1", "https://files/u/doc-1.pdf", "policy.pdf", 512)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("existing row", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs("doc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "doc-1"))
	})

	t.Run("missing row is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.Delete(ctx, "missing"))
	})
}
