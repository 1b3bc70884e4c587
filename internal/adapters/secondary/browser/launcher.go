package browser

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener is one way of handing a URL to a browser
type Opener struct {
	Name    string
	Command string
	Args    func(url string) []string
}

// Launcher opens generated pages in a browser for `serve --open`
type Launcher struct {
	openers  []Opener
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// NewLauncher creates a launcher for the current platform
func NewLauncher() *Launcher {
	return &Launcher{
		openers:  platformOpeners(runtime.GOOS),
		lookPath: exec.LookPath,
		start:    startDetached,
	}
}

// Open hands url to the first opener found on PATH
func (l *Launcher) Open(url string) error {
	opener, err := l.selectOpener()
	if err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}

	if err := l.start(opener.Command, opener.Args(url)...); err != nil {
		return fmt.Errorf("launching %s: %w", opener.Name, err)
	}
	return nil
}

func (l *Launcher) selectOpener() (*Opener, error) {
	if len(l.openers) == 0 {
		return nil, fmt.Errorf("no browser opener known for %s", runtime.GOOS)
	}

	for i := range l.openers {
		if _, err := l.lookPath(l.openers[i].Command); err == nil {
			return &l.openers[i], nil
		}
	}

	return nil, errors.New("no supported browser found on this system")
}

// startDetached starts the command without waiting for the browser to exit
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...) // #nosec G204 - command comes from the fixed opener table
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func platformOpeners(goos string) []Opener {
	direct := func(url string) []string { return []string{url} }

	switch goos {
	case "darwin":
		return []Opener{{Name: "open", Command: "open", Args: direct}}
	case "linux", "freebsd", "openbsd":
		return []Opener{
			{Name: "xdg-open", Command: "xdg-open", Args: direct},
			{Name: "Chrome", Command: "google-chrome", Args: direct},
			{Name: "Firefox", Command: "firefox", Args: direct},
		}
	case "windows":
		return []Opener{{
			Name:    "Default",
			Command: "rundll32",
			Args: func(url string) []string {
				return []string{"url.dll,FileProtocolHandler", url}
			},
		}}
	default:
		return nil
	}
}
