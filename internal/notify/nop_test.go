package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopNotifier_AlwaysFails(t *testing.T) {
	var n Notifier = NewNopNotifier()

	err := n.Send(context.Background(), "100500", "code")
	assert.ErrorIs(t, err, ErrChannelDisabled)
}
