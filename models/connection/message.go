package connection

type NoPayload bool

type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// NewErrMessage builds a response that only carries an error. The
// error text goes to ErrorDetails and message is meant for the player.
func NewErrMessage[T any](code uint8, err error, message string) Message[T] {
	msg := NewMessage[T](code)
	details := ""
	if err != nil {
		details = err.Error()
	}
	msg.AddError(details, message)
	return msg
}
