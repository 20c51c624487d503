package service

import (
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
)

// Sound names the notification cues played on the capture device.
type Sound string

const (
	SoundSuccess      Sound = "success"
	SoundNotification Sound = "notification"
)

// Notifier plays an attendance outcome cue. Implementations are strictly
// best-effort: playback failure must never reach the caller.
type Notifier interface {
	Play(sound Sound)
}

// NopNotifier discards every cue.
type NopNotifier struct{}

func (NopNotifier) Play(Sound) {}

// execNotifier shells out to a configured player, e.g. ["aplay", "-q"],
// appending <sound_dir>/<sound>.wav. Playback runs detached so a slow or
// hung player cannot delay the recognition response.
type execNotifier struct {
	command  []string
	soundDir string
	logger   *zap.Logger
}

// NewNotifier builds a notifier from configuration. Disabled or command-less
// config yields a NopNotifier.
func NewNotifier(cfg *config.NotifyConfig, logger *zap.Logger) Notifier {
	if !cfg.Enabled || len(cfg.Command) == 0 {
		return NopNotifier{}
	}
	return &execNotifier{
		command:  cfg.Command,
		soundDir: cfg.SoundDir,
		logger:   logger,
	}
}

func (n *execNotifier) Play(sound Sound) {
	path := filepath.Join(n.soundDir, string(sound)+".wav")
	args := append(append([]string(nil), n.command[1:]...), path)
	cmd := exec.Command(n.command[0], args...)
	if err := cmd.Start(); err != nil {
		n.logger.Debug("sound playback failed", zap.String("sound", string(sound)), zap.Error(err))
		return
	}
	go func() { _ = cmd.Wait() }()
}
