package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "job_offers_slug_key"}

	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert job offer: %w", dup)), "detecta errores envueltos")
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}))
	assert.False(t, isUniqueViolation(errors.New("23505")), "no se adivina por el texto")
	assert.Equal(t, "job_offers_slug_key", violatedConstraint(dup))
	assert.Empty(t, violatedConstraint(errors.New("x")))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("otro")))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("4f9a3c2e-6a8b-4d0f-9a43-2b1c7e5d9f10"))
	assert.False(t, validID("no-existe"))
	assert.False(t, validID(""))
}

func TestMigrationFiles_OrdenadasYEmbebidas(t *testing.T) {
	files, err := migrationFiles()
	assert.NoError(t, err)
	assert.NotEmpty(t, files)
	assert.Equal(t, "001_init.sql", files[0])
}
