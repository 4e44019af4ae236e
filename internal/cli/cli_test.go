package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/waiteperspectives/eml/pkg/buildinfo"
	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/observability"
	"github.com/waiteperspectives/eml/pkg/pipeline"
)

const threeNodes = `
- job: {id: J1, text: "nightly"}
- command: {id: C1}
- event: {id: E1, fields: {customer: "123"}}
- arrow: {begin_at: J1, end_at: C1}
- arrow: {begin_at: C1, end_at: E1}
`

// writeConfig writes body as a config file. An empty body disables the
// cache.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	if body == "" {
		body = "[cache]\nbackend = \"none\"\n"
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args against config and returns
// what the command wrote to stdout.
func runCLI(t *testing.T, config, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)

	prev := uiOut
	uiOut = io.Discard
	t.Cleanup(func() { uiOut = prev })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", config}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCompileStdio(t *testing.T) {
	out, err := runCLI(t, writeConfig(t, ""), threeNodes, "compile")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.HasPrefix(out, "<?xml") || !strings.Contains(out, `id="J1"`) {
		t.Errorf("stdout is not the diagram SVG:\n%.200s", out)
	}
	if strings.Contains(out, "marker-end") {
		t.Error("arrowheads drawn without --arrowheads")
	}
}

func TestCompileFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"arrowheads", []string{"--arrowheads"}, `marker-end="url(#arrowhead)"`},
		{"json", []string{"-f", "json"}, `"kind"`},
		{"nodelink", []string{"--type", "nodelink", "--detailed"}, "<svg"},
		{"explicit stdio", []string{"-", "-"}, `id="E1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"compile"}, tt.args...)
			out, err := runCLI(t, writeConfig(t, ""), threeNodes, args...)
			if err != nil {
				t.Fatalf("compile %v: %v", tt.args, err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output does not contain %q", tt.contains)
			}
		})
	}
}

func TestCompileConfigDefaults(t *testing.T) {
	config := writeConfig(t, `
[render]
formats = ["json"]

[cache]
backend = "none"
`)

	out, err := runCLI(t, config, threeNodes, "compile")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "{") {
		t.Errorf("config formats ignored, got %.40q", out)
	}

	// Flags override the file.
	out, err = runCLI(t, config, threeNodes, "compile", "-f", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("--format did not override config, got %.40q", out)
	}
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "model.yaml")
	if err := os.WriteFile(in, []byte(threeNodes), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("single", func(t *testing.T) {
		out := filepath.Join(dir, "diagram.svg")
		if _, err := runCLI(t, writeConfig(t, ""), "", "compile", in, out); err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, []byte(`width="1650"`)) {
			t.Errorf("unexpected SVG:\n%.300s", data)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		base := filepath.Join(dir, "multi.out")
		if _, err := runCLI(t, writeConfig(t, ""), "", "compile", in, base, "-f", "svg,json,png"); err != nil {
			t.Fatal(err)
		}
		for _, ext := range []string{"svg", "json", "png"} {
			if _, err := os.Stat(filepath.Join(dir, "multi."+ext)); err != nil {
				t.Errorf("missing %s output: %v", ext, err)
			}
		}
	})

	t.Run("file cache", func(t *testing.T) {
		config := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(t.TempDir())+"\"\n")
		out := filepath.Join(dir, "cached.svg")
		for i := 0; i < 2; i++ {
			if _, err := runCLI(t, config, "", "compile", in, out); err != nil {
				t.Fatalf("run %d: %v", i, err)
			}
		}
		if _, err := os.Stat(out); err != nil {
			t.Error(err)
		}
	})
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.Code
	}{
		{"unknown node type", "- process: {id: P1}", nil, errors.ErrCodeInvalidNodeType},
		{"unsupported arrow", "- event: {id: E}\n- job: {id: J}\n- arrow: {begin_at: E, end_at: J}", nil, errors.ErrCodeUnsupportedArrow},
		{"duplicate id", "- job: {id: J}\n- form: {id: J}", nil, errors.ErrCodeDuplicateNodeID},
		{"bad format", threeNodes, []string{"-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad type", threeNodes, []string{"-t", "tower"}, errors.ErrCodeInvalidVizType},
		{"nodelink json", threeNodes, []string{"-t", "nodelink", "-f", "json"}, errors.ErrCodeInvalidFormat},
		{"negative scale", threeNodes, []string{"--scale=-1"}, errors.ErrCodeInvalidInput},
		{"several formats to stdout", threeNodes, []string{"-f", "svg,png"}, errors.ErrCodeInvalidInput},
		{"missing file", "", []string{"does-not-exist.yaml"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"compile"}, tt.args...)
			_, err := runCLI(t, writeConfig(t, ""), tt.stdin, args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestBadConfig(t *testing.T) {
	config := writeConfig(t, "[cache]\nbackend = \"memcached\"\n")
	_, err := runCLI(t, config, threeNodes, "compile")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestDemoCommand(t *testing.T) {
	out, err := runCLI(t, writeConfig(t, ""), "", "demo")
	if err != nil {
		t.Fatal(err)
	}
	doc, err := pipeline.Parse([]byte(out))
	if err != nil {
		t.Fatalf("demo output does not parse: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("demo document is empty")
	}

	path := filepath.Join(t.TempDir(), "demo.yaml")
	if _, err := runCLI(t, writeConfig(t, ""), "", "demo", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != out {
		t.Error("demo file differs from demo stdout")
	}

	// The demo must compile.
	if _, err := runCLI(t, writeConfig(t, ""), out, "compile"); err != nil {
		t.Errorf("compiling the demo: %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := runCLI(t, writeConfig(t, ""), threeNodes, "inspect")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"1650×1350", "J1", "C1", "E1", "command", "right → top", "bottom → left"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	config := writeConfig(t, "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := runCLI(t, config, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	if _, err := runCLI(t, config, threeNodes, "compile"); err != nil {
		t.Fatal(err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("compile did not populate the cache")
	}

	if _, err := runCLI(t, config, "", "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, writeConfig(t, ""), "", "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, "eml") {
			t.Errorf("completion %s does not mention eml", shell)
		}
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCLI(t, writeConfig(t, ""), "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "eml version "+buildinfo.Version) {
		t.Errorf("--version = %q", out)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and empties", " svg , ,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		out     string
		formats []string
		want    map[string]string
	}{
		{"a.svg", []string{"svg"}, map[string]string{"svg": "a.svg"}},
		{"a.out", []string{"png"}, map[string]string{"png": "a.out"}},
		{"dir/a.svg", []string{"svg", "png"}, map[string]string{"svg": "dir/a.svg", "png": "dir/a.png"}},
		{"a", []string{"json", "pdf"}, map[string]string{"json": "a.json", "pdf": "a.pdf"}},
	}

	for _, tt := range tests {
		got := outputPaths(tt.out, tt.formats)
		for f, want := range tt.want {
			if got[f] != want {
				t.Errorf("outputPaths(%q, %v)[%s] = %q, want %q", tt.out, tt.formats, f, got[f], want)
			}
		}
	}
}
