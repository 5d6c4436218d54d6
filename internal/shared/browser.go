package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserCommand returns the launcher used to open url on the given platform.
func browserCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: cannot open a browser on %s", ErrServiceUnavailable, goos)
	}
}

// OpenBrowser opens url in the default system browser without waiting for it to exit.
func OpenBrowser(url string) error {
	name, args, err := browserCommand(getRuntime(), url)
	if err != nil {
		return err
	}

	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
