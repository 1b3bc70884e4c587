package browser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLauncher(available map[string]bool) (*Launcher, *[]string) {
	var started []string
	l := &Launcher{
		openers: platformOpeners("linux"),
		lookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		start: func(name string, args ...string) error {
			started = append(started, name)
			started = append(started, args...)
			return nil
		},
	}
	return l, &started
}

func TestLauncher_Open(t *testing.T) {
	t.Run("first available opener wins", func(t *testing.T) {
		l, started := fakeLauncher(map[string]bool{"firefox": true, "google-chrome": true})

		require.NoError(t, l.Open("http://localhost:8000/"))
		assert.Equal(t, []string{"google-chrome", "http://localhost:8000/"}, *started)
	})

	t.Run("nothing on path", func(t *testing.T) {
		l, started := fakeLauncher(nil)

		err := l.Open("http://localhost:8000/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no supported browser")
		assert.Empty(t, *started)
	})

	t.Run("start failure", func(t *testing.T) {
		l, _ := fakeLauncher(map[string]bool{"xdg-open": true})
		l.start = func(string, ...string) error { return errors.New("exec format error") }

		err := l.Open("http://localhost:8000/")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "launching xdg-open")
	})

	t.Run("unknown platform", func(t *testing.T) {
		l := &Launcher{openers: platformOpeners("plan9"), lookPath: func(string) (string, error) { return "", nil }}

		err := l.Open("http://localhost:8000/")
		assert.Error(t, err)
	})
}

func TestPlatformOpeners(t *testing.T) {
	tests := []struct {
		goos    string
		command string
	}{
		{"darwin", "open"},
		{"linux", "xdg-open"},
		{"windows", "rundll32"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			openers := platformOpeners(tt.goos)
			require.NotEmpty(t, openers)
			assert.Equal(t, tt.command, openers[0].Command)
			args := openers[0].Args("http://x/")
			assert.Equal(t, "http://x/", args[len(args)-1])
		})
	}
}
