package utils_test

import (
	"context"
	"testing"

	"tour-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestSessionID(t *testing.T) {
	sid := utils.NewSessionID()
	assert.True(t, utils.ValidSessionID(sid))
	assert.False(t, utils.ValidSessionID("not-a-session"))
	assert.False(t, utils.ValidSessionID(""))

	_, ok := utils.GetSessionIDFromContext(context.Background())
	assert.False(t, ok)

	got, ok := utils.GetSessionIDFromContext(utils.SetSessionContext(context.Background(), sid))
	assert.True(t, ok)
	assert.Equal(t, sid, got)
}
