package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewQuoteRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewQuoteRepository(pool)
	assert.NotNil(t, repo)
}
