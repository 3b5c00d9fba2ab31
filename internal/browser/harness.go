package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// The harness wraps the markup in a page that pauses every CSS
// animation and exposes setAnimationProgress(p) for the capture loop.
// Elements of the spinner_ class family carry hard-wired start offsets
// matching the stagger the detector special-cases; every other element
// is positioned with a negative animation-delay. SMIL timelines are
// positioned through their begin attribute.
var harnessTmpl = template.Must(template.New("harness").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
    body {
        margin: 0;
        padding: 0;
        background: white;
        display: flex;
        justify-content: center;
        align-items: center;
        min-height: 100vh;
    }
    #svg-container {
        display: flex;
        justify-content: center;
        align-items: center;
    }
</style>
</head>
<body>
<div id="svg-container">
{{.Markup}}
</div>
<script>
    document.querySelectorAll('*').forEach(el => {
        if (el.style.animation) {
            el.style.animationPlayState = 'paused';
        }
    });

    function setAnimationProgress(progress) {
        const totalDuration = {{.Duration}};
        const currentTime = progress * totalDuration;

        document.querySelectorAll('[class*="spinner_"]').forEach(el => {
            const className = el.className.baseVal || el.className;
            let delay = 0;

            if (className.includes('spinner_LWk7')) {
                delay = 0;
            } else if (className.includes('spinner_yOMU')) {
                delay = 0.15;
            } else if (className.includes('spinner_KS4S')) {
                delay = 0.3;
            } else if (className.includes('spinner_zVee')) {
                delay = 0.45;
            }

            const animDuration = 1.2;
            const effectiveTime = currentTime - delay;

            if (effectiveTime < 0) {
                el.style.animationDelay = '999s';
                el.style.animationPlayState = 'paused';
            } else {
                const animProgress = (effectiveTime % animDuration);
                el.style.animationDelay = ` + "`-${animProgress}s`" + `;
                el.style.animationPlayState = 'paused';
            }
        });

        document.querySelectorAll('animate, animateTransform').forEach(el => {
            el.setAttribute('begin', ` + "`-${currentTime}s`" + `);
        });
    }
</script>
</body>
</html>
`))

// WriteHarness renders the capture page into dir and returns its
// file:// URL.
func WriteHarness(dir, markup string, duration float64) (string, error) {
	path := filepath.Join(dir, "harness.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("write harness: %w", err)
	}
	data := struct {
		Markup   string
		Duration float64
	}{markup, duration}
	if err := harnessTmpl.Execute(f, data); err != nil {
		f.Close()
		return "", fmt.Errorf("write harness: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write harness: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}
