package types_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kudos/pkg/domain/types"
)

func TestSlackUserIDMention(t *testing.T) {
	gt.Equal(t, "<@U12345>", types.SlackUserID("U12345").Mention())
}

func TestNewRecognitionID(t *testing.T) {
	id1 := types.NewRecognitionID()
	id2 := types.NewRecognitionID()

	gt.True(t, strings.HasPrefix(id1.String(), "rec-"))
	gt.NotEqual(t, id1, id2)
}
