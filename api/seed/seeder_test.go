package seed

import (
	"context"
	"testing"

	"Yatube/api/models"
	"Yatube/api/utils/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIsRepeatable(t *testing.T) {
	db := testdb.Open(t)

	require.NoError(t, Load(context.Background(), db))
	require.NoError(t, Load(context.Background(), db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, len(users), count)
	require.NoError(t, db.Model(&models.Group{}).Count(&count).Error)
	assert.EqualValues(t, len(groups), count)
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, len(posts), count)
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.EqualValues(t, len(follows), count)
}
