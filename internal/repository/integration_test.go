package repository_test

import (
	"testing"

	"github.com/ministryworks/dms-go/internal/config/db"
	"github.com/ministryworks/dms-go/internal/domain/document"
	"github.com/ministryworks/dms-go/internal/repository"
	"github.com/ministryworks/dms-go/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Exercises the JSONB columns and unique index against real postgres.
func TestDocumentRoundTripPostgres(t *testing.T) {
	dsn, cleanup := testutils.SetupPostgresForIntegration(t)
	defer cleanup()

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	repos := repository.New(gormDB)

	doc := seedDocument(t, repos.Document, "Budget Q1", "REF-001", "report")
	doc.Comments = append(doc.Comments, document.Comment{UserID: 2, Content: "looks good"})
	doc.SignedBy = append(doc.SignedBy, 2)
	require.NoError(t, repos.Document.Update(doc))

	got, err := repos.Document.GetByID(doc.DID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "looks good", got.Comments[0].Content)
	assert.Equal(t, []uint{2}, []uint(got.SignedBy))

	taken, err := repos.Document.RootReferenceExists("REF-001", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}
