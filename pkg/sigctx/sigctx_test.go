package sigctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifyParentContext(t *testing.T) {
	parent, cancelParent := context.WithCancel(t.Context())
	ctx, stop := NotifyParentContext(parent)
	defer stop()

	assert.NoError(t, ctx.Err())
	cancelParent()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
