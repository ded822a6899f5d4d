package clipboard

import (
	"fmt"
	"sync"
	"time"

	sysclip "github.com/atotto/clipboard"
)

const (
	LabelIdle   = "Copy"
	LabelCopied = "Copied!"

	DefaultAckDuration = 2 * time.Second
)

// Copier writes file contents to the system clipboard and shows a transient
// acknowledgement that reverts after a fixed delay.
type Copier struct {
	write func(string) error
	ack   time.Duration

	mu     sync.Mutex
	copied bool
	timer  *time.Timer
	epoch  uint64
}

func New(ack time.Duration) *Copier {
	return NewWithWriter(sysclip.WriteAll, ack)
}

func NewWithWriter(write func(string) error, ack time.Duration) *Copier {
	if ack <= 0 {
		ack = DefaultAckDuration
	}
	return &Copier{write: write, ack: ack}
}

// Copy writes content verbatim. A copy during an acknowledgement restarts the delay.
func (c *Copier) Copy(content string) error {
	if err := c.write(content); err != nil {
		return fmt.Errorf("failed to write to clipboard: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.copied = true
	c.epoch++
	epoch := c.epoch
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ack, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.epoch == epoch {
			c.copied = false
		}
	})
	return nil
}

func (c *Copier) Copied() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copied
}

func (c *Copier) Label() string {
	if c.Copied() {
		return LabelCopied
	}
	return LabelIdle
}

func (c *Copier) AckDuration() time.Duration { return c.ack }
