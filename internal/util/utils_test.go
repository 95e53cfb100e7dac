package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quadcheck/internal/logger"
)

func TestClampLerp(t *testing.T) {
	if Clamp(-3, 0, 255) != 0 || Clamp(300, 0, 255) != 255 || Clamp(12.5, 0, 255) != 12.5 {
		t.Fatal("clamp")
	}
	if Lerp(50, 80, 0.5) != 65 {
		t.Fatal("lerp")
	}
}

func TestWithSuffix(t *testing.T) {
	cases := map[[2]string]string{
		{"out/quadric.png", "cone"}: "out/quadric_cone.png",
		{"frame", "sphere"}:         "frame_sphere",
		{"a.tiff", ""}:              "a.tiff",
	}
	for in, want := range cases {
		if got := WithSuffix(in[0], in[1]); got != want {
			t.Errorf("WithSuffix(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}

func TestFilesAndDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if DirExists(dir) {
		t.Fatal("dir should not exist yet")
	}
	if err := CreateDirIfNotExist(dir); err != nil {
		t.Fatal(err)
	}
	if !DirExists(dir) || FileExists(dir) {
		t.Fatal("dir checks")
	}
	f := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(f) {
		t.Fatal("file should exist")
	}
}

func TestTimeTrack(t *testing.T) {
	var buf bytes.Buffer
	TimeTrack(logger.New(&buf, "debug"), time.Now(), "render")
	if !strings.Contains(buf.String(), "render took") {
		t.Fatalf("got %q", buf.String())
	}
}
