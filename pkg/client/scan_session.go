package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
)

type ScanState int

const (
	ScanIdle ScanState = iota
	ScanScanning
	ScanProcessing
	ScanSuccess
	ScanFailed
)

func (s ScanState) String() string {
	switch s {
	case ScanIdle:
		return "idle"
	case ScanScanning:
		return "scanning"
	case ScanProcessing:
		return "processing"
	case ScanSuccess:
		return "success"
	case ScanFailed:
		return "failed"
	}
	return "unknown"
}

var (
	ErrInvalidQRCode = errors.New("Invalid QR code format")
	ErrSessionState  = errors.New("operation not allowed in the current scan state")
)

// Receiver imports a scanned payload.
type Receiver interface {
	ReceiveNote(ctx context.Context, data ShareData) (*Note, error)
}

// ScanSession drives one QR import: Idle -> Scanning -> Processing ->
// Success or Failed. Only the first code decoded while Scanning is imported.
type ScanSession struct {
	camera   Camera
	receiver Receiver
	onChange func(ScanState, error)

	mu        sync.Mutex
	state     ScanState
	err       error
	note      *Note
	cameraOn  bool
	ctx       context.Context
	cancel    context.CancelFunc
	// generation ties an import to the Start it belongs to; Close bumps it so
	// late results are dropped.
	generation int
}

// NewScanSession wires a camera to a receiver. onChange, when set, is called
// after every state change, outside the session lock.
func NewScanSession(camera Camera, receiver Receiver, onChange func(ScanState, error)) *ScanSession {
	return &ScanSession{camera: camera, receiver: receiver, onChange: onChange}
}

func (s *ScanSession) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the failure reason while Failed.
func (s *ScanSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Note is the imported note once Success.
func (s *ScanSession) Note() *Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note
}

func (s *ScanSession) CameraActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraOn
}

func (s *ScanSession) notify(state ScanState, err error) {
	if s.onChange != nil {
		s.onChange(state, err)
	}
}

// Start acquires the camera and begins scanning. Codes the camera delivers
// while Start is still running are accepted.
func (s *ScanSession) Start() error {
	s.mu.Lock()
	if s.state != ScanIdle {
		s.mu.Unlock()
		return ErrSessionState
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.err = nil
	s.note = nil
	s.state = ScanScanning
	s.cameraOn = true
	generation := s.generation
	s.mu.Unlock()
	s.notify(ScanScanning, nil)

	if err := s.camera.Start(s.OnDecoded); err != nil {
		s.mu.Lock()
		current := s.generation == generation
		if current {
			s.cancel()
			s.cancel = nil
			s.generation++
			s.cameraOn = false
			s.state = ScanIdle
			s.err = nil
			s.note = nil
		}
		s.mu.Unlock()
		if current {
			s.notify(ScanIdle, nil)
		}
		return err
	}

	// Closed while the camera was starting: nothing owns it any more.
	s.mu.Lock()
	orphaned := s.generation != generation && !s.cameraOn
	s.mu.Unlock()
	if orphaned {
		_ = s.camera.Stop()
	}
	return nil
}

// OnDecoded handles one decoded text. Texts arriving outside Scanning are
// ignored. It returns once the import finished.
func (s *ScanSession) OnDecoded(text string) {
	s.mu.Lock()
	if s.state != ScanScanning {
		s.mu.Unlock()
		return
	}
	s.state = ScanProcessing
	ctx := s.ctx
	generation := s.generation
	s.mu.Unlock()
	s.notify(ScanProcessing, nil)

	var note *Note
	data, err := ParseShareData(text)
	if err == nil {
		note, err = s.receiver.ReceiveNote(ctx, data)
	}

	s.mu.Lock()
	if s.generation != generation || s.state != ScanProcessing {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.state = ScanFailed
		s.err = err
		s.mu.Unlock()
		s.notify(ScanFailed, err)
		return
	}

	s.state = ScanSuccess
	s.note = note
	stop := s.takeCamera()
	s.mu.Unlock()
	if stop {
		_ = s.camera.Stop()
	}
	s.notify(ScanSuccess, nil)
}

// Retry goes back to scanning after a failed import. The camera stayed on.
func (s *ScanSession) Retry() error {
	s.mu.Lock()
	if s.state != ScanFailed {
		s.mu.Unlock()
		return ErrSessionState
	}
	s.state = ScanScanning
	s.err = nil
	s.mu.Unlock()

	s.notify(ScanScanning, nil)
	return nil
}

// Close releases the camera from any state and abandons an in-flight import.
// The session can be started again afterwards.
func (s *ScanSession) Close() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	stop := s.takeCamera()
	s.generation++
	changed := s.state != ScanIdle
	s.state = ScanIdle
	s.err = nil
	s.mu.Unlock()

	if stop {
		_ = s.camera.Stop()
	}
	if changed {
		s.notify(ScanIdle, nil)
	}
}

// takeCamera hands the running camera to the caller, who stops it after
// releasing mu. It must be called with mu held.
func (s *ScanSession) takeCamera() bool {
	if !s.cameraOn {
		return false
	}
	s.cameraOn = false
	return true
}

// ParseShareData decodes a scanned text into a share payload.
func ParseShareData(text string) (ShareData, error) {
	var data ShareData
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &data); err != nil {
		return ShareData{}, ErrInvalidQRCode
	}
	if data.Title == "" || data.NoteId == "" {
		return ShareData{}, ErrInvalidQRCode
	}
	return data, nil
}
