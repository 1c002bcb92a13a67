package psub

import (
	"sync"
)

// Service is a keyed publish/subscribe hub. Notify delivers synchronously:
// every handler registered under the key has run by the time Notify returns.
type Service struct {
	mu     sync.RWMutex
	seq    uint64
	subPub map[string][]*Notify
}

type Notify struct {
	Key     string
	id      uint64
	handler func(interface{})
	service *Service
}

func New() *Service {
	return &Service{
		subPub: make(map[string][]*Notify),
	}
}

// Notify calls the handlers of key in subscription order.
func (p *Service) Notify(key string, notify interface{}) {
	p.mu.RLock()
	subs := make([]*Notify, len(p.subPub[key]))
	copy(subs, p.subPub[key])
	p.mu.RUnlock()

	for _, s := range subs {
		s.handler(notify)
	}
}

func (p *Service) NewSubscribe(key string, handler func(interface{})) *Notify {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.seq++
	n := &Notify{
		Key:     key,
		id:      p.seq,
		handler: handler,
		service: p,
	}
	p.subPub[key] = append(p.subPub[key], n)
	return n
}

// Subscribers reports how many handlers are registered under key.
func (p *Service) Subscribers(key string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subPub[key])
}

func (s *Notify) Cancel() {
	p := s.service
	p.mu.Lock()
	defer p.mu.Unlock()

	subs := p.subPub[s.Key]
	for i, n := range subs {
		if n.id == s.id {
			p.subPub[s.Key] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(p.subPub[s.Key]) == 0 {
		delete(p.subPub, s.Key)
	}
}
