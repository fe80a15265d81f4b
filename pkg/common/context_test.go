package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetUserID(ctx)
	assert.False(t, ok)

	var seen string
	ctx = WithUserSlot(ctx, &seen)
	ctx = WithUserRoles(WithUserID(ctx, "alice"), []string{"editor"})

	id, ok := GetUserID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "alice", id)
	assert.Equal(t, "alice", seen)

	roles, ok := GetUserRoles(ctx)
	assert.True(t, ok)
	assert.Equal(t, []string{"editor"}, roles)
}
