package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// InitResourceLimits raises the open-file limit so long capture runs
// do not exhaust descriptors (macOS/Linux).
func InitResourceLimits() {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not read file limit: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	if err := syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		log.Printf("[!] could not raise file limit: %v", err)
	}
}

// browserCandidates in probe order. headless-shell ships with bare
// CDP support and wins when installed.
var browserCandidates = []string{
	"headless-shell",
	"chromium",
	"chromium-browser",
	"google-chrome",
	"google-chrome-stable",
	"chrome",
}

// FindBrowser locates a Chromium-family binary for the rendering
// surface. An explicit override skips probing.
func FindBrowser(override string) (string, error) {
	if override != "" {
		if p, err := exec.LookPath(override); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("browser %q not found in PATH", override)
	}
	for _, name := range browserCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no Chromium-family browser found in PATH (tried %s)",
		strings.Join(browserCandidates, ", "))
}

// FindLatestInput returns the most recently modified convertible file
// in dir (.svg or .gif).
func FindLatestInput(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext != ".svg" && ext != ".gif" {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no SVG or GIF files found in %s", dir)
	}
	return latestFile, nil
}

// CheckAvailableMemory warns when the estimated frame buffer exceeds
// available system memory. Advisory only; the run proceeds either way.
func CheckAvailableMemory(estimated uint64) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return
	}
	if estimated > vm.Available {
		log.Printf("[!] estimated frame memory %d MB exceeds available %d MB; the run may swap",
			estimated/(1<<20), vm.Available/(1<<20))
	}
}
