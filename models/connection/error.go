package connection

import "fmt"

const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
)

type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}
