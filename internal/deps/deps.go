// Package deps reports whether the external binaries blochsim shells out to
// are available.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency blochsim relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

var lookPath = exec.LookPath

// Default returns the binaries used by the renderers. ffmpeg is optional
// because only mp4 output needs it.
func Default(ffmpeg string) []Requirement {
	if strings.TrimSpace(ffmpeg) == "" {
		ffmpeg = "ffmpeg"
	}
	return []Requirement{{
		Name:        "FFmpeg",
		Command:     ffmpeg,
		Description: "Encodes mp4 video from rendered frames",
		Optional:    true,
	}}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := lookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// RequireFFmpeg returns an error when the ffmpeg binary cannot be resolved.
func RequireFFmpeg(binary string) error {
	st := CheckBinaries(Default(binary))[0]
	if !st.Available {
		return fmt.Errorf("mp4 output needs ffmpeg: %s", st.Detail)
	}
	return nil
}
