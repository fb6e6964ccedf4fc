package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/measure/pkg/errors"
	"github.com/matzehuels/measure/pkg/units"
)

// runCLI executes the root command with args against c and returns stdout.
func runCLI(t *testing.T, c *CLI, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func newTestCLI() *CLI {
	var logs bytes.Buffer
	return New(&logs, LogInfo)
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"parse area", []string{"parse", "5", "sq", "cm"}, []string{"value", "5", "centimeter (cm)", "power", "2", "Length"}},
		{"parse composite", []string{"parse", `5'6"`}, []string{"5.5", "foot"}},
		{"parse kind", []string{"parse", "5'", "--kind", "angle"}, []string{"arcminute", "Angle"}},
		{"parse to", []string{"parse", `5'6"`, "--to", "in"}, []string{"66"}},
		{"parse base", []string{"parse", "150 cm", "--base"}, []string{"1.5 m"}},
		{"convert area", []string{"convert", "5", "sq", "ft", "m"}, []string{"0.46451", "m²"}},
		{"convert abstract", []string{"convert", "4 storeys", "m", "--scale", "3"}, []string{"12 m"}},
		{"convert volume", []string{"convert", "2 L", "cm"}, []string{"2 L", "cm³"}},
		{"compare equal", []string{"compare", "1in", "2.54cm"}, []string{" = "}},
		{"compare less", []string{"compare", "1 ft", "1 m"}, []string{" < "}},
		{"compare epsilon", []string{"compare", "1 m", "1.01 m", "--epsilon", "0.1"}, []string{" = "}},
		{"calc mul", []string{"calc", "3", "m", "x", "2", "m"}, []string{"6 m²"}},
		{"calc add", []string{"calc", `5'6"`, "+", "6", "in"}, []string{"6 '"}},
		{"calc div to", []string{"calc", "1 L", "/", "10 cm", "--to", "cm"}, []string{"cm²"}},
		{"units list", []string{"units", "list", "--kind", "data"}, []string{"byte", "kilobyte", "KB"}},
		{"units graph", []string{"units", "graph", "--kind", "length"}, []string{"digraph G", `label="Length"`}},
		{"completion", []string{"completion", "bash"}, []string{"bash completion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, newTestCLI(), tt.args...)
			if err != nil {
				t.Fatalf("%v error = %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("%v output = %q, want it to contain %q", tt.args, out, want)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no number", []string{"parse", "hello"}, errors.ErrCodeNoNumberFound},
		{"no unit", []string{"parse", "5", "zorks"}, errors.ErrCodeNoUnitMatch},
		{"unknown kind", []string{"parse", "5 m", "--kind", "flavor"}, errors.ErrCodeNotFound},
		{"unknown target", []string{"convert", "5 m", "zorks"}, errors.ErrCodeNotFound},
		{"abstract without scale", []string{"convert", "4 storeys", "m"}, errors.ErrCodeAbstractUnresolved},
		{"compare kinds", []string{"compare", "1 m", "1 kg"}, errors.ErrCodeDifferentKind},
		{"compare powers", []string{"compare", "1 m", "1 sq ft"}, errors.ErrCodeDifferentPower},
		{"calc kinds", []string{"calc", "1 m", "+", "1 kg"}, errors.ErrCodeDifferentKind},
		{"calc no operator", []string{"calc", "3", "m", "2"}, errors.ErrCodeInvalidInput},
		{"calc mod zero", []string{"calc", "3 m", "%", "0 m"}, errors.ErrCodeDivisionByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, newTestCLI(), tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("%v error = %v, want %v", tt.args, err, tt.code)
			}
		})
	}
}

func TestUnitsGraphToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.dot")

	out, err := runCLI(t, newTestCLI(), "units", "graph", "-o", path)
	if err != nil {
		t.Fatalf("units graph error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q, want the file path", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("digraph G")) {
		t.Errorf("file content = %q, want DOT", data[:min(len(data), 40)])
	}
}

// customCLI returns a CLI over a private registry so configuration can add
// units without touching the standard catalog.
func customCLI(t *testing.T) *CLI {
	t.Helper()
	reg := units.NewRegistry()
	dist := units.NewKind("Distance")
	reg.MustDefine(dist, units.DefOptions{Naming: units.Naming{Name: "meter", Symbol: "m"}, Scale: 1, Base: true})
	c := newTestCLI()
	c.Registry = reg
	return c
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	conf := `
[[units]]
kind = "Distance"
name = "furlong"
symbol = "fur"
scale = 201.168
`
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, customCLI(t), "--config", path, "convert", "2 fur", "m")
	if err != nil {
		t.Fatalf("convert error = %v", err)
	}
	if !strings.Contains(out, "402.336 m") {
		t.Errorf("output = %q, want 402.336 m", out)
	}
}

func TestConfigFlagInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[compare]\nepsilon = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, customCLI(t), "--config", path, "parse", "2 m")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %v", err, errors.ErrCodeInvalidConfig)
	}
}

func TestSplitExpression(t *testing.T) {
	tests := []struct {
		args            []string
		left, op, right string
		wantErr         bool
	}{
		{[]string{"3", "m", "x", "2", "m"}, "3 m", "x", "2 m", false},
		{[]string{"2-1/4\"", "-", "1\""}, "2-1/4\"", "-", "1\"", false},
		{[]string{"5 m", "mod", "2 m"}, "5 m", "mod", "2 m", false},
		{[]string{"+", "2", "m"}, "", "", "", true},
		{[]string{"2", "m", "+"}, "", "", "", true},
		{[]string{"2", "m", "3"}, "", "", "", true},
	}

	for _, tt := range tests {
		left, op, right, err := splitExpression(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitExpression(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if left != tt.left || op != tt.op || right != tt.right {
			t.Errorf("splitExpression(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.args, left, op, right, tt.left, tt.op, tt.right)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"":           "dot",
		"units.dot":  "dot",
		"units.svg":  "svg",
		"out/u.PDF":  "dot",
		"units.png":  "png",
		"units.json": "dot",
	}
	for path, want := range tests {
		if got := formatFromPath(path); got != want {
			t.Errorf("formatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestFormatPower(t *testing.T) {
	tests := []struct {
		def  *units.UnitDef
		want string
	}{
		{units.Centimeter, "1-3"},
		{units.Liter, "3"},
		{units.Becquerel, "1"},
	}
	for _, tt := range tests {
		if got := formatPower(tt.def); got != tt.want {
			t.Errorf("formatPower(%s) = %q, want %q", tt.def, got, tt.want)
		}
	}
}
