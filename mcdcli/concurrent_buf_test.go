package mcdcli_test

import "sync"

// stderrWrapper lets stderr be read while the command is still writing to it
type stderrWrapper struct {
	msg string
	m   sync.Mutex
}

func (e *stderrWrapper) Write(p []byte) (n int, err error) {
	e.m.Lock()
	defer e.m.Unlock()
	e.msg += string(p)
	return len(p), nil
}

func (e *stderrWrapper) Read() string {
	e.m.Lock()
	defer e.m.Unlock()
	return e.msg
}
