package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	timelinePath := writeTimelineFixture(t, home)

	stdout, stderr, err := runTLV(t, binaryPath, home, "report", timelinePath, "--use", "2", "--width", "100")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Serpent Offering timeline")
	assert.Contains(t, stdout, "uses: 5.0s(Qu)")

	stdout, stderr, err = runTLV(t, binaryPath, home, "view", timelinePath)
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "One-two Paw")

	_, stderr, err = runTLV(t, binaryPath, home, "report", filepath.Join(home, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, stderr, "load timeline")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "tlv-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/tlv")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build tlv binary: %s", string(output))
	return binaryPath
}

func runTLV(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeTimelineFixture(t *testing.T, home string) string {
	t.Helper()

	timeline := `# smoke
0.0 "--sync--"
5.0 "Quadruple Crossing"
10.0 "One-two Paw"
`

	path := filepath.Join(home, "timeline.txt")
	require.NoError(t, os.WriteFile(path, []byte(timeline), 0o644))
	return path
}
