package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestChatPairKeyIsOrderIndependent(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	assert.Equal(t, ChatPairKey(a, b), ChatPairKey(b, a))
	assert.NotEqual(t, ChatPairKey(a, b), ChatPairKey(a, uuid.New()))
}

func TestChatPartnerOf(t *testing.T) {
	creator := uuid.New()
	invited := uuid.New()
	chat := Chat{CreatorID: creator, InvitedUserID: invited}

	assert.Equal(t, invited, chat.PartnerOf(creator))
	assert.Equal(t, creator, chat.PartnerOf(invited))
	assert.True(t, chat.HasParticipant(creator))
	assert.True(t, chat.HasParticipant(invited))
	assert.False(t, chat.HasParticipant(uuid.New()))
}
