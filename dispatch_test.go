package protomsg

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByAction(t *testing.T) {
	d := NewDispatcher()

	var got []byte
	d.Register(7, func(m *Message) error {
		got = m.Param(0)
		return nil
	})

	m, err := Decode(buildMessage(nil, 7, []byte{0xAB, 0xCD}), true)
	require.NoError(t, err)

	require.NoError(t, d.Handle(m))
	assert.Equal(t, []byte{0xAB, 0xCD}, got)
}

func TestDispatcherUnknownAction(t *testing.T) {
	d := NewDispatcher()
	m, err := Decode(buildMessage(nil, 99), false)
	require.NoError(t, err)

	assert.ErrorIs(t, d.Handle(m), ErrNoHandler)
}

func TestDispatcherHandlerError(t *testing.T) {
	d := NewDispatcher()
	want := errors.New("refused")
	d.Register(3, func(*Message) error { return want })

	m, err := Decode(buildMessage(nil, 3), false)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Handle(m), want)
}

func TestDispatcherRegisterUnregister(t *testing.T) {
	d := NewDispatcher()
	d.Register(1, func(*Message) error { return nil })
	d.Register(2, func(*Message) error { return nil })
	assert.ElementsMatch(t, []uint32{1, 2}, d.Actions())

	d.Unregister(1)
	assert.ElementsMatch(t, []uint32{2}, d.Actions())

	m, err := Decode(buildMessage(nil, 1), false)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Handle(m), ErrNoHandler)
}

func TestDispatcherConcurrent(t *testing.T) {
	d := NewDispatcher()
	m, err := Decode(buildMessage(nil, 5), false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(action uint32) {
			defer wg.Done()
			d.Register(action, func(*Message) error { return nil })
			// Action 5 may or may not be registered yet; both outcomes are
			// fine, the point is that the race is safe.
			_ = d.Handle(m)
		}(uint32(i))
	}
	wg.Wait()

	assert.NoError(t, d.Handle(m))
	assert.Len(t, d.Actions(), 8)
}
