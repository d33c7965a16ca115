package platform

import "testing"

func TestBuildConvertArgs(t *testing.T) {
	args := BuildConvertArgs("/downloads/job-1", "https://youtube.com/watch?v=abc")

	expectedArgs := []string{
		"-x",
		"--audio-format", AudioFormat,
		"--audio-quality", AudioQuality,
		"-o", "/downloads/job-1/%(title)s.%(ext)s",
		"--no-playlist-reverse",
		"--newline",
		"--progress",
		"--concurrent-fragments", ConcurrentFragments,
		"--retries", Retries,
		"--fragment-retries", FragmentRetries,
		"--buffer-size", BufferSize,
		"https://youtube.com/watch?v=abc",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}

func TestBuildProbeArgs(t *testing.T) {
	args := BuildProbeArgs("https://youtube.com/watch?v=abc")

	expectedArgs := []string{
		"--dump-json",
		"--flat-playlist",
		"--no-warnings",
		"https://youtube.com/watch?v=abc",
	}

	if len(args) != len(expectedArgs) {
		t.Fatalf("Expected %d args, got %d", len(expectedArgs), len(args))
	}

	for i, expected := range expectedArgs {
		if args[i] != expected {
			t.Errorf("Arg %d: expected %s, got %s", i, expected, args[i])
		}
	}
}
