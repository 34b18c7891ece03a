package notify

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estate-api/internal/domain"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []Message
}

func (s *recordingSender) Send(m Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
	return nil
}

func TestDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender, zap.NewNop(), 8)

	d.Enqueue(Message{To: []string{"a@example.com"}, Subject: "one"})
	d.Enqueue(Message{To: []string{"b@example.com"}, Subject: "two"})
	d.Enqueue(Message{To: []string{"c@example.com"}, Subject: "three"})
	d.Close()

	require.Len(t, sender.sent, 3)
	assert.Equal(t, "one", sender.sent[0].Subject)
	assert.Equal(t, "three", sender.sent[2].Subject)
}

func TestDispatcherNilEnqueueIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Enqueue(Message{Subject: "ignored"})
	})
}

func TestDispatcherCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&recordingSender{}, zap.NewNop(), 4)
	d.Close()
	assert.NotPanics(t, d.Close)
}

func TestInquiryMailGoesToOwner(t *testing.T) {
	l := &domain.Listing{Title: "Sea View Flat in Vasai West", OwnerName: "Asha", OwnerEmail: "owner@example.com"}
	q := &domain.Inquiry{Name: "Ravi", Email: "ravi@example.com", Phone: "9999999999", Message: "Is this still available?"}

	m := NewInquiryReceived(l, q)
	assert.Equal(t, []string{l.OwnerEmail}, m.To)
	assert.Contains(t, m.HTML, l.Title)
	assert.Contains(t, m.HTML, q.Name)
}

func TestSubmissionMailCopiesOwner(t *testing.T) {
	l := &domain.Listing{Title: "Sea View Flat in Vasai West", OwnerName: "Asha", OwnerEmail: "owner@example.com"}

	m := NewListingSubmitted(l, "admin@example.com")
	assert.Equal(t, []string{"admin@example.com"}, m.To)
	assert.Equal(t, []string{l.OwnerEmail}, m.Cc)
}
