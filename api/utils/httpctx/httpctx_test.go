package httpctx

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUserRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := CurrentUserID(c)
	assert.False(t, ok)
	assert.False(t, IsAuthenticated(c))
	assert.False(t, IsAdminRequest(c))
	assert.Empty(t, CurrentUsername(c))

	SetUser(c, 7, "leo", true)
	uid, ok := CurrentUserID(c)
	assert.True(t, ok)
	assert.EqualValues(t, 7, uid)
	assert.Equal(t, "leo", CurrentUsername(c))
	assert.True(t, IsAdminRequest(c))
}
