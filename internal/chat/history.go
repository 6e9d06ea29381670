package chat

import "sync"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// History keeps a bounded per-sender conversation. Only the last
// maxMessages entries survive, older turns are evicted on append.
type History struct {
	mu          sync.Mutex
	maxMessages int
	bySender    map[string][]Message
}

func NewHistory(maxMessages int) *History {
	if maxMessages <= 0 {
		maxMessages = 12
	}
	return &History{
		maxMessages: maxMessages,
		bySender:    make(map[string][]Message),
	}
}

func (h *History) Append(sender string, messages ...Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := append(h.bySender[sender], messages...)
	if len(turns) > h.maxMessages {
		turns = turns[len(turns)-h.maxMessages:]
	}
	h.bySender[sender] = turns
}

func (h *History) Get(sender string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	turns := h.bySender[sender]
	copied := make([]Message, len(turns))
	copy(copied, turns)
	return copied
}
