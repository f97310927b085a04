package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const sceneScript = `
[canvas]
width = 100
height = 80

[[node]]
name = "bg"
x = 0
y = 0
width = 100
height = 80
color = "#102030"

[[node]]
name = "panel"
parent = "bg"
x = 10
y = 10

[[node]]
name = "hero"
parent = "panel"
x = 5
y = 5
width = 8
height = 8
priority = 1

[[node]]
name = "hidden"
parent = "panel"
x = 40
y = 40
width = 4
height = 4
priority = 2
enabled = false

[[step]]
action = "render"
label = "first"

[[step]]
action = "move"
node = "hero"
x = 2

[[step]]
action = "render"
label = "moved"

[[step]]
action = "render"
`

// writeScript writes src to a temporary scene file and returns its path.
func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testContext returns a context carrying a logger that writes to the
// returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return withLogger(context.Background(), newLogger(&buf, log.DebugLevel)), &buf
}
