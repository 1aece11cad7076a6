package client

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

var ErrCameraBusy = errors.New("camera already started")

// Camera produces decoded QR texts. Start begins delivering them to
// onDecoded until Stop. onDecoded may be called before Start returns, and
// Stop may be called from inside onDecoded, so Stop must not wait for
// onDecoded to return.
type Camera interface {
	Start(onDecoded func(text string)) error
	Stop() error
}

// LineCamera treats every non-empty input line as one decoded code. USB HID
// scanners type the decoded text followed by Enter, and piped input works the
// same way.
type LineCamera struct {
	mu        sync.Mutex
	onDecoded func(string)
	done      chan struct{}
	err       error
}

func NewLineCamera(r io.Reader) *LineCamera {
	c := &LineCamera{done: make(chan struct{})}
	go c.read(r)
	return c
}

func (c *LineCamera) read(r io.Reader) {
	defer close(c.done)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.mu.Lock()
		cb := c.onDecoded
		c.mu.Unlock()
		if cb != nil {
			cb(line)
		}
	}

	c.mu.Lock()
	c.err = scanner.Err()
	c.mu.Unlock()
}

func (c *LineCamera) Start(onDecoded func(text string)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.onDecoded != nil {
		return ErrCameraBusy
	}
	c.onDecoded = onDecoded
	return nil
}

// Stop detaches the consumer. Lines read while stopped are dropped.
func (c *LineCamera) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onDecoded = nil
	return nil
}

// Done is closed once the input is exhausted.
func (c *LineCamera) Done() <-chan struct{} {
	return c.done
}

func (c *LineCamera) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
