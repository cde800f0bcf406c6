package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRecordsDecode(t *testing.T) {
	records := []MessageInterface{
		MessageStart{Fen: "startpos", White: "alice", Black: "bob"},
		MessageMove{Ply: 1, Move: "e2e4", Fen: "after"},
		MessageUndo{Move: "e2e4", Fen: "before"},
		MessageGameOver{Result: "1-0", Method: "KingReachedGoal", Winner: "White"},
	}
	for _, want := range records {
		got, err := Decode(Encode(want))
		require.NoError(t, err, want.Type().String())
		assert.Equal(t, want, got)
	}
}

func TestDecodeRejectsUnknownTypes(t *testing.T) {
	_, err := Decode([]byte(`{"MsgType":42,"Data":{}}`))
	assert.ErrorIs(t, err, ErrUnknownMessage)

	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
	assert.Equal(t, "Unknown MessageType", MessageType(42).String())
}
