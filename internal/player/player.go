// Package player plays encoded pronunciation audio with the platform's
// audio command. Playback is fire-and-forget: the caller is never blocked
// on completion.
package player

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"codeberg.org/snonux/charla/internal"
	"codeberg.org/snonux/charla/internal/speech"
)

// cleanupGrace is added to the estimated playback duration before the
// temp file is removed. Cleanup is scheduled, not synchronized with true
// end of playback; a documented approximation.
const cleanupGrace = 2 * time.Second

// Player writes WAV blobs to temp files and shells out to an OS player.
type Player struct {
	tempDir string
}

// New creates a player writing temp files to the system temp directory.
func New() *Player {
	return &Player{tempDir: os.TempDir()}
}

// Play writes the WAV blob for word to a temp file and starts playback in
// the background. The file is removed after the estimated duration plus a
// grace period.
func (p *Player) Play(word string, wav []byte) error {
	file := filepath.Join(p.tempDir,
		fmt.Sprintf("charla_%s.wav", internal.SanitizeFilename(word)))
	if err := os.WriteFile(file, wav, 0644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	cmd, err := playbackCommand(file)
	if err != nil {
		os.Remove(file)
		return err
	}

	if err := cmd.Start(); err != nil {
		os.Remove(file)
		return fmt.Errorf("failed to start playback: %w", err)
	}

	go func() {
		cmd.Wait()
	}()

	time.AfterFunc(EstimateDuration(wav)+cleanupGrace, func() {
		os.Remove(file)
	})

	return nil
}

// EstimateDuration computes the playback duration of a WAV blob from the
// fixed PCM format.
func EstimateDuration(wav []byte) time.Duration {
	payload := len(wav) - 44
	if payload <= 0 {
		return 0
	}
	bytesPerSecond := speech.SampleRate * speech.Channels * speech.BitDepth / 8
	return time.Duration(payload) * time.Second / time.Duration(bytesPerSecond)
}

// playbackCommand picks the platform audio player
func playbackCommand(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", file), nil
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", file), nil
		}
		if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
		}
		if _, err := exec.LookPath("play"); err == nil {
			return exec.Command("play", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install paplay, aplay, ffplay or sox")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
