package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const usageLine = "Usage: lookangle [source_lat] [source_lon] [source_alt] [dest_lat] [dest_lon] [dest_alt]\n"

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"lookangle"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_ArgumentCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"five", []string{"0", "0", "0", "0", "1"}},
		{"seven", []string{"0", "0", "0", "0", "1", "0", "9"}},
		{"flag only", []string{"-lenient"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout != usageLine {
				t.Errorf("stdout = %q, want %q", stdout, usageLine)
			}
		})
	}
}

func TestRun_Output(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "due east along equator",
			args: []string{"0", "0", "0", "0", "1", "0"},
			want: "Azimuth: 90.000000 degrees\nElevation: -0.500000 degrees\n",
		},
		{
			name: "directly overhead",
			args: []string{"0", "0", "0", "0", "0", "1000"},
			want: "Azimuth: 0.000000 degrees\nElevation: 90.000000 degrees\n",
		},
		{
			name: "negative coordinates are not flags",
			args: []string{"-33.9", "18.4", "10", "-34.5", "19.0", "2000"},
			want: "Azimuth: 140.447006 degrees\nElevation: 0.790682 degrees\n",
		},
		{
			name: "double dash ends flags",
			args: []string{"--", "0", "0", "0", "0", "1", "0"},
			want: "Azimuth: 90.000000 degrees\nElevation: -0.500000 degrees\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, tt.args...)
			if code != 0 {
				t.Fatalf("exit code = %d, want 0 (stderr %q)", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRun_DegenerateGeometry(t *testing.T) {
	// Coincident observer and target leave the line of sight undefined.
	code, stdout, stderr := runCLI(t, "10", "10", "10", "10", "10", "10")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 (stderr %q)", code, stderr)
	}
	want := "Azimuth: NaN degrees\nElevation: NaN degrees\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "degenerate geometry") {
		t.Errorf("stderr = %q, want a degenerate geometry warning", stderr)
	}
}

func TestRun_StrictParsing(t *testing.T) {
	code, stdout, stderr := runCLI(t, "0", "0", "abc", "0", "1", "0")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if !strings.Contains(stderr, "source_alt") {
		t.Errorf("stderr = %q, want it to name source_alt", stderr)
	}
}

func TestRun_LenientParsing(t *testing.T) {
	want := "Azimuth: 90.000000 degrees\nElevation: -0.500000 degrees\n"

	t.Run("flag", func(t *testing.T) {
		code, stdout, stderr := runCLI(t, "-lenient", "0", "0", "abc", "0", "1", "0")
		if code != 0 {
			t.Fatalf("exit code = %d, want 0 (stderr %q)", code, stderr)
		}
		if stdout != want {
			t.Errorf("stdout = %q, want %q", stdout, want)
		}
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("VIEWANGLE_CLI_LENIENT", "true")
		code, stdout, _ := runCLI(t, "0", "0", "0", "0", "1", "altitude")
		if code != 0 || stdout != want {
			t.Errorf("run() = %d, %q; want 0, %q", code, stdout, want)
		}
	})
}

func TestRun_Config(t *testing.T) {
	t.Run("invalid ellipsoid", func(t *testing.T) {
		t.Setenv("VIEWANGLE_ELLIPSOID_INVERSE_FLATTENING", "0.5")
		code, stdout, stderr := runCLI(t, "0", "0", "0", "0", "1", "0")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if stdout != "" {
			t.Errorf("stdout = %q, want empty", stdout)
		}
		if !strings.Contains(stderr, "inverse flattening") {
			t.Errorf("stderr = %q, want ellipsoid error", stderr)
		}
	})

	t.Run("config file", func(t *testing.T) {
		// A sphere-like ellipsoid with a 1000 m radius: 1000 m straight up
		// is still overhead.
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		data := "ellipsoid:\n  semi_major_axis: 1000\n  inverse_flattening: 1000000000\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		code, stdout, stderr := runCLI(t, "-config", path, "0", "0", "0", "0", "0", "1000")
		if code != 0 {
			t.Fatalf("exit code = %d, want 0 (stderr %q)", code, stderr)
		}
		if !strings.HasSuffix(stdout, "Elevation: 90.000000 degrees\n") {
			t.Errorf("stdout = %q", stdout)
		}
	})
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := runCLI(t, "-h")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(stdout, usageLine) {
		t.Errorf("stdout = %q, want usage", stdout)
	}
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFlags int
	}{
		{"no flags", []string{"1", "2"}, 0},
		{"bool flag", []string{"-lenient", "1"}, 1},
		{"negative number", []string{"-1", "2"}, 0},
		{"value flag", []string{"-config", "a.yaml", "-5"}, 2},
		{"value flag with equals", []string{"--config=a.yaml", "5"}, 1},
		{"double dash", []string{"-lenient", "--", "-x"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, _ := splitArgs(tt.args)
			if len(flags) != tt.wantFlags {
				t.Errorf("splitArgs(%q) flags = %q, want %d", tt.args, flags, tt.wantFlags)
			}
		})
	}
}
