package pkg

import (
	"encoding/json"
	"log"
)

// Messages are journal records: one JSON line in the log per event of a
// match, enough to replay it.

type MessageType int

const (
	TypeMessageStart MessageType = iota
	TypeMessageMove
	TypeMessageUndo
	TypeMessageGameOver
)

func (m MessageType) String() string {
	switch m {
	case TypeMessageStart:
		return "TypeMessageStart"
	case TypeMessageMove:
		return "TypeMessageMove"
	case TypeMessageUndo:
		return "TypeMessageUndo"
	case TypeMessageGameOver:
		return "TypeMessageGameOver"
	default:
		return "Unknown MessageType"
	}
}

type MessageInterface interface {
	Type() MessageType
}

// MessageTransport wraps a message with its type so it can be decoded back
type MessageTransport struct {
	MsgType MessageType
	Data    json.RawMessage
}

type MessageStart struct {
	Fen   string
	White string
	Black string
}

func (m MessageStart) Type() MessageType { return TypeMessageStart }

type MessageMove struct {
	Ply  int
	Move string
	Fen  string
}

func (m MessageMove) Type() MessageType { return TypeMessageMove }

type MessageUndo struct {
	Move string
	Fen  string
}

func (m MessageUndo) Type() MessageType { return TypeMessageUndo }

type MessageGameOver struct {
	Result string
	Method string
	Winner string
}

func (m MessageGameOver) Type() MessageType { return TypeMessageGameOver }

// Encode marshals a message inside its transport envelope
func Encode(m MessageInterface) []byte {
	data, err := json.Marshal(m)
	if err != nil {
		log.Panic(err)
	}
	b, err := json.Marshal(MessageTransport{MsgType: m.Type(), Data: data})
	if err != nil {
		log.Panic(err)
	}
	return b
}

// Decode reads an envelope produced by Encode back into its message
func Decode(b []byte) (MessageInterface, error) {
	var transport MessageTransport
	if err := json.Unmarshal(b, &transport); err != nil {
		return nil, err
	}
	var m MessageInterface
	switch transport.MsgType {
	case TypeMessageStart:
		var msg MessageStart
		err := json.Unmarshal(transport.Data, &msg)
		m = msg
		if err != nil {
			return nil, err
		}
	case TypeMessageMove:
		var msg MessageMove
		err := json.Unmarshal(transport.Data, &msg)
		m = msg
		if err != nil {
			return nil, err
		}
	case TypeMessageUndo:
		var msg MessageUndo
		err := json.Unmarshal(transport.Data, &msg)
		m = msg
		if err != nil {
			return nil, err
		}
	case TypeMessageGameOver:
		var msg MessageGameOver
		err := json.Unmarshal(transport.Data, &msg)
		m = msg
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnknownMessage
	}
	return m, nil
}

// Journal writes m to the log
func Journal(m MessageInterface) {
	log.Printf("%s", Encode(m))
}
