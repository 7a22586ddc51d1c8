// Package notify shows transient on-screen feedback for mixer changes.
// Key auto-repeat can trigger many changes per second; bursts are coalesced
// so only the latest value within the gap window reaches the notification
// daemon.
package notify

import (
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"mixkey/log"
)

const minGap = 150 * time.Millisecond

type Notifier struct {
	title string
	post  func(title, text string) error

	mu      sync.Mutex
	last    time.Time
	pending string
	timer   *time.Timer
	closed  bool
}

func New(title string) *Notifier {
	return &Notifier{
		title: title,
		post: func(title, text string) error {
			return beeep.Notify(title, text, "")
		},
	}
}

// Show displays text now, or holds it until the gap window elapses when a
// notification was just shown. A newer text replaces a pending one.
func (n *Notifier) Show(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	since := time.Since(n.last)
	if since >= minGap {
		n.last = time.Now()
		n.postLocked(text)
		return
	}

	n.pending = text
	if n.timer == nil {
		n.timer = time.AfterFunc(minGap-since, n.flush)
	}
}

func (n *Notifier) flush() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.timer = nil
	if n.closed || n.pending == "" {
		return
	}
	text := n.pending
	n.pending = ""
	n.last = time.Now()
	n.postLocked(text)
}

func (n *Notifier) postLocked(text string) {
	if err := n.post(n.title, text); err != nil {
		log.Warnf("notify: %v", err)
	}
}

// Close drops any pending notification and stops the flush timer.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.pending = ""
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
