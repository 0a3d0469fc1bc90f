package cmake

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ToolInfo holds some information about an external build tool.
type ToolInfo struct {
	// Name of the tool.
	Name string
	// Path of the tool's executable.
	Path string
	// Version number of the tool.
	Version string
}

// ProbeTool looks up the executable with the given name or path and runs it
// with --version to find out its version.
func ProbeTool(ctx context.Context, pathOrExec string) (ToolInfo, error) {
	cmd := execCommandContext(ctx, pathOrExec, "--version")
	stdout, err := cmd.Output()
	if err != nil {
		return ToolInfo{}, fmt.Errorf("cmake: failed to probe %s: %w", pathOrExec, err)
	}

	return ToolInfo{
		Name:    strings.TrimSuffix(filepath.Base(pathOrExec), filepath.Ext(pathOrExec)),
		Path:    cmd.Path,
		Version: parseVersion(stdout),
	}, nil
}

// parseVersion returns the last word of the first line mentioning a version,
// or of the first line if none does. "cmake version 3.22.1" yields 3.22.1,
// Ninja's bare "1.10.2" is returned as is.
func parseVersion(stdout []byte) string {
	lines := bytes.Split(stdout, []byte("\n"))
	versionLine := lines[0]
	for _, line := range lines {
		if bytes.Contains(line, []byte("version")) {
			versionLine = line
			break
		}
	}
	versionLine = bytes.TrimSpace(versionLine)
	return string(versionLine[bytes.LastIndexByte(versionLine, ' ')+1:])
}
