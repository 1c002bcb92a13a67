package psub

import (
	"testing"
)

func TestNotifyOrder(t *testing.T) {
	p := New()
	var got []int
	p.NewSubscribe("config", func(v interface{}) { got = append(got, v.(int)*10+1) })
	p.NewSubscribe("config", func(v interface{}) { got = append(got, v.(int)*10+2) })
	p.NewSubscribe("other", func(v interface{}) { t.Errorf("other key should not be notified") })

	p.Notify("config", 1)
	if len(got) != 2 || got[0] != 11 || got[1] != 12 {
		t.Errorf("handlers should run synchronously in order, got %v", got)
	}
}

func TestCancel(t *testing.T) {
	p := New()
	calls := 0
	a := p.NewSubscribe("config", func(interface{}) { calls++ })
	b := p.NewSubscribe("config", func(interface{}) { calls += 100 })

	a.Cancel()
	p.Notify("config", nil)
	if calls != 100 {
		t.Errorf("cancelled handler ran, calls=%d", calls)
	}
	if n := p.Subscribers("config"); n != 1 {
		t.Errorf("want 1 subscriber got %d", n)
	}

	b.Cancel()
	b.Cancel()
	if n := p.Subscribers("config"); n != 0 {
		t.Errorf("want 0 subscribers got %d", n)
	}
	p.Notify("config", nil)
	if calls != 100 {
		t.Errorf("no handler should run after cancel, calls=%d", calls)
	}
}

func TestNotifyWithoutSubscribers(t *testing.T) {
	New().Notify("nobody", struct{}{})
}
