package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Port 1 refuses connections, so both constructors fail their ping and must
// hand back no client.
func TestConstructorsFailWithoutServer(t *testing.T) {
	wishlist, err := NewRedisWishlist("127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Nil(t, wishlist)
	assert.Contains(t, err.Error(), "failed to connect to redis")

	repo, err := NewPostgresRepository("postgres://hostelhub@127.0.0.1:1/hostelhub?sslmode=disable&connect_timeout=1", 2, 1)
	require.Error(t, err)
	assert.Nil(t, repo)
}
