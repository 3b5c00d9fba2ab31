package browser

import (
	"bufio"
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"regexp"
	"time"
)

// loadSettle gives the page time to parse the document and apply the
// paused-animation state before the first capture.
const loadSettle = 1500 * time.Millisecond

var devtoolsURLRe = regexp.MustCompile(`DevTools listening on (ws://\S+)`)

// ChromeSurface runs one headless Chromium-family process and talks to
// it over the DevTools protocol. One session serves a whole run;
// startup is too expensive to pay per frame.
type ChromeSurface struct {
	cmd         *exec.Cmd
	conn        *cdpConn
	sessionID   string
	userDataDir string
}

// Options configure the headless session.
type Options struct {
	BrowserPath string
	HarnessPath string // file:// page generated by WriteHarness
	Width       int
	Height      int
}

// NewChromeSurface launches the browser, attaches to a fresh target
// and navigates it to the harness page. The returned surface must be
// closed by the caller.
func NewChromeSurface(opts Options) (*ChromeSurface, error) {
	userDataDir, err := os.MkdirTemp("", "svg2gif_chrome_")
	if err != nil {
		return nil, err
	}

	args := []string{
		"--headless",
		"--disable-gpu",
		"--no-first-run",
		"--no-default-browser-check",
		"--hide-scrollbars",
		"--remote-debugging-port=0",
		fmt.Sprintf("--window-size=%d,%d", opts.Width, opts.Height),
		"--force-device-scale-factor=2",
		"--user-data-dir=" + userDataDir,
		"about:blank",
	}

	cmd := exec.Command(opts.BrowserPath, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		os.RemoveAll(userDataDir)
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		os.RemoveAll(userDataDir)
		return nil, fmt.Errorf("start browser %s: %w", opts.BrowserPath, err)
	}

	s := &ChromeSurface{cmd: cmd, userDataDir: userDataDir}

	wsURL, err := waitForDevtools(stderr)
	if err != nil {
		s.Close()
		return nil, err
	}

	conn, err := dialCDP(wsURL)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.conn = conn

	var created struct {
		TargetID string `json:"targetId"`
	}
	err = conn.call("Target.createTarget", map[string]interface{}{
		"url": opts.HarnessPath,
	}, "", &created)
	if err != nil {
		s.Close()
		return nil, err
	}

	var attached struct {
		SessionID string `json:"sessionId"`
	}
	err = conn.call("Target.attachToTarget", map[string]interface{}{
		"targetId": created.TargetID,
		"flatten":  true,
	}, "", &attached)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.sessionID = attached.SessionID

	if err := conn.call("Page.enable", nil, s.sessionID, nil); err != nil {
		s.Close()
		return nil, err
	}

	time.Sleep(loadSettle)
	return s, nil
}

// waitForDevtools scans browser stderr for the advertised websocket
// endpoint. The port is ephemeral, so the announcement is the only way
// to find it.
func waitForDevtools(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if m := devtoolsURLRe.FindStringSubmatch(scanner.Text()); m != nil {
			// Keep draining stderr so the browser never blocks on a
			// full pipe.
			go func() {
				for scanner.Scan() {
				}
			}()
			return m[1], nil
		}
	}
	return "", fmt.Errorf("browser exited before announcing a DevTools endpoint")
}

func (s *ChromeSurface) SetProgress(progress float64) error {
	expr := fmt.Sprintf("setAnimationProgress(%g);", progress)
	return s.conn.call("Runtime.evaluate", map[string]interface{}{
		"expression": expr,
	}, s.sessionID, nil)
}

func (s *ChromeSurface) CaptureStill() (image.Image, error) {
	var res struct {
		Data string `json:"data"`
	}
	err := s.conn.call("Page.captureScreenshot", map[string]interface{}{
		"format": "png",
	}, s.sessionID, &res)
	if err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(res.Data)
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

// Close tears the session down unconditionally: protocol goodbye is
// best-effort, the process is killed if it does not exit.
func (s *ChromeSurface) Close() error {
	if s.conn != nil {
		s.conn.post("Browser.close")
		_ = s.conn.Close()
		s.conn = nil
	}
	if s.cmd != nil && s.cmd.Process != nil {
		done := make(chan struct{})
		go func() {
			_ = s.cmd.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			_ = s.cmd.Process.Kill()
			<-done
		}
		s.cmd = nil
	}
	if s.userDataDir != "" {
		err := os.RemoveAll(s.userDataDir)
		s.userDataDir = ""
		return err
	}
	return nil
}
