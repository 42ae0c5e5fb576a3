package console

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipegen/internal/logger"
)

func TestCLINotifier(t *testing.T) {
	var b strings.Builder
	printFn := func(format string, a ...interface{}) { fmt.Fprintf(&b, format, a...) }
	ctx := context.Background()

	plain := NewCLINotifier(logger.New(logger.LevelOff, nil), printFn, false)
	require.NoError(t, plain.Notify(ctx, "ok"))
	require.NoError(t, plain.NotifyUrgent(ctx, "boom"))
	assert.Equal(t, "ok\nboom\n", b.String())

	b.Reset()
	colored := NewCLINotifier(logger.New(logger.LevelOff, nil), printFn, true)
	require.NoError(t, colored.NotifyUrgent(ctx, "boom"))
	assert.Equal(t, red+bold+"boom"+reset+"\n", b.String())
}
