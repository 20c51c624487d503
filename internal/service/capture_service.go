package service

import (
	"errors"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/dto"
	apperrors "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/errors"
)

var ErrCaptureDisabled = errors.New("capture command not configured")

// stopSignal asks the recognizer to close its window and release the camera.
var stopSignal = syscall.SIGTERM

// CaptureService supervises the external face-recognition process. The
// recognizer owns the camera and runs as a separate OS process; this service
// only starts, stops and inspects it.
type CaptureService interface {
	Start() (*dto.CaptureStatusResponse, error)
	// Stop terminates gracefully, then kills after the configured timeout.
	Stop() error
	Status() *dto.CaptureStatusResponse
}

type captureService struct {
	cfg    *config.CaptureConfig
	logger *zap.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd
	startedAt time.Time
	done      chan struct{}
}

// NewCaptureService creates the supervisor.
func NewCaptureService(cfg *config.CaptureConfig, logger *zap.Logger) CaptureService {
	return &captureService{cfg: cfg, logger: logger}
}

func (s *captureService) Start() (*dto.CaptureStatusResponse, error) {
	if len(s.cfg.Command) == 0 {
		return nil, ErrCaptureDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running() {
		return nil, apperrors.ErrCaptureAlreadyRunning
	}

	cmd := exec.Command(s.cfg.Command[0], s.cfg.Command[1:]...)
	cmd.Dir = s.cfg.Workdir
	if err := cmd.Start(); err != nil {
		s.logger.Error("capture process start failed", zap.Error(err))
		return nil, err
	}

	s.cmd = cmd
	s.startedAt = time.Now()
	s.done = make(chan struct{})

	// Reap the process so a crashed recognizer is noticed and Status
	// flips back to not-running.
	done := s.done
	go func() {
		err := cmd.Wait()
		close(done)
		if err != nil {
			s.logger.Warn("capture process exited", zap.Error(err))
		} else {
			s.logger.Info("capture process exited")
		}
	}()

	s.logger.Info("capture process started",
		zap.Strings("command", s.cfg.Command),
		zap.Int("pid", cmd.Process.Pid))
	return s.statusLocked(), nil
}

func (s *captureService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running() {
		return apperrors.ErrCaptureNotRunning
	}

	proc := s.cmd.Process
	if err := proc.Signal(stopSignal); err != nil {
		s.logger.Warn("graceful terminate failed, killing", zap.Error(err))
		return proc.Kill()
	}

	timeout := s.cfg.StopTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	select {
	case <-s.done:
	case <-time.After(timeout):
		s.logger.Warn("capture process ignored terminate, killing",
			zap.Duration("timeout", timeout))
		if err := proc.Kill(); err != nil {
			return err
		}
		<-s.done
	}
	return nil
}

func (s *captureService) Status() *dto.CaptureStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// running must be called with mu held.
func (s *captureService) running() bool {
	if s.cmd == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *captureService) statusLocked() *dto.CaptureStatusResponse {
	if !s.running() {
		return &dto.CaptureStatusResponse{Running: false}
	}
	return &dto.CaptureStatusResponse{
		Running:   true,
		PID:       s.cmd.Process.Pid,
		StartedAt: s.startedAt.Format(time.RFC3339),
	}
}
