package event_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/chefmenu/pkg/event"
)

func TestFireInRegistrationOrder(t *testing.T) {
	d := event.New()
	var got []string
	d.Listen("menu.item_added", func(p interface{}) { got = append(got, "a:"+p.(string)) })
	d.Listen("menu.item_added", func(p interface{}) { got = append(got, "b:"+p.(string)) })
	d.Listen("other", func(interface{}) { got = append(got, "other") })

	d.Fire("menu.item_added", "x")
	assert.Equal(t, []string{"a:x", "b:x"}, got)
}

func TestFireAsync(t *testing.T) {
	d := event.New()
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		d.Listen("ping", func(interface{}) { wg.Done() })
	}
	d.FireAsync("ping", nil)
	wg.Wait()
}

func TestFlushAndNil(t *testing.T) {
	d := event.New()
	called := false
	d.Listen("e", func(interface{}) { called = true })
	d.Flush()
	d.Fire("e", nil)
	assert.False(t, called)

	var none *event.Dispatcher
	assert.NotPanics(t, func() { none.Fire("e", nil) })
}
