package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/ofc/domain"
	"github.com/lazharichir/ofc/domain/commands"
)

func TestCommandRouter_Decode(t *testing.T) {
	router := NewCommandRouter(Defaults{Players: 3, StartingStake: 5000})

	tests := []struct {
		name    string
		message string
		want    commands.Command
	}{
		{"start with defaults", `{"name":"START_GAME"}`, commands.StartGame{PlayerCount: 3, StartingStake: 5000}},
		{"start", `{"name":"START_GAME","playerCount":2,"startingStake":100}`, commands.StartGame{PlayerCount: 2, StartingStake: 100}},
		{"next hand", `{"name":"START_NEXT_HAND"}`, commands.StartNextHand{}},
		{"place", `{"name":"PLACE_CARD","cardId":"card-7","line":"middle","slot":3}`, commands.PlaceCard{CardID: "card-7", Line: "middle", Slot: 3}},
		{"return", `{"name":"RETURN_CARD_TO_HAND","cardId":"card-7"}`, commands.ReturnCardToHand{CardID: "card-7"}},
		{"discard", `{"name":"DISCARD_CARD","cardId":"card-9"}`, commands.DiscardCard{CardID: "card-9"}},
		{"confirm", `{"name":"CONFIRM_TURN"}`, commands.ConfirmTurn{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := router.Decode([]byte(tt.message))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestCommandRouter_DecodeErrors(t *testing.T) {
	router := NewCommandRouter(Defaults{})

	_, err := router.Decode([]byte(`{"name":"FOLD"}`))
	assert.ErrorIs(t, err, domain.ErrUnknownCommand)

	_, err = router.Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = router.Decode([]byte(`{"name":"PLACE_CARD","slot":"first"}`))
	assert.ErrorContains(t, err, "PLACE_CARD")
}
