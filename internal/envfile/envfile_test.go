package envfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnvFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestLoadMissingFileYieldsNothing(t *testing.T) {
	vars := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(vars) != 0 {
		t.Fatalf("expected no variables from a missing file, got %v", vars)
	}
}

func TestLoadSkipsCommentsBlanksAndMalformedLines(t *testing.T) {
	path := writeEnvFile(t, strings.Join([]string{
		"# leading comment",
		"",
		"   ",
		"NOEQUALS",
		"=missing-key",
		"  = also-missing ",
		"TOKEN=abc123",
	}, "\n"))

	vars := Load(path)
	if len(vars) != 1 {
		t.Fatalf("expected exactly one variable, got %v", vars)
	}
	if vars["TOKEN"] != "abc123" {
		t.Fatalf("TOKEN = %q, want %q", vars["TOKEN"], "abc123")
	}
}

func TestLoadFirstOccurrenceOfDuplicateKeyWins(t *testing.T) {
	path := writeEnvFile(t, strings.Join([]string{
		"TOKEN=first",
		"TOKEN=second",
		"TOKEN=third",
	}, "\n"))

	vars := Load(path)
	if got := vars["TOKEN"]; got != "first" {
		t.Fatalf("TOKEN = %q, want %q (first occurrence must win)", got, "first")
	}
}

func TestLoadSplitsOnFirstEquals(t *testing.T) {
	vars := Load(writeEnvFile(t, "IRC_SASL=user=avicbot;mech=plain"))
	if got := vars["IRC_SASL"]; got != "user=avicbot;mech=plain" {
		t.Fatalf("IRC_SASL = %q, want value split on first '='", got)
	}
}

func TestLoadStripsOneMatchingQuotePair(t *testing.T) {
	path := writeEnvFile(t, strings.Join([]string{
		`GREETING="value with spaces"`,
		`CHANNEL='#avicbot'`,
		`NESTED="'inner'"`,
		`MISMATCHED="oops'`,
		`LONE="`,
	}, "\n"))

	vars := Load(path)
	cases := map[string]string{
		"GREETING":   "value with spaces",
		"CHANNEL":    "#avicbot",
		"NESTED":     "'inner'",
		"MISMATCHED": `"oops'`,
		"LONE":       `"`,
	}
	for key, want := range cases {
		if got := vars[key]; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestApplyNeverOverridesExistingKeys(t *testing.T) {
	environ := []string{"TWITCH_TOKEN=from-parent", "HOME=/home/avic"}
	merged := Apply(environ, map[string]string{
		"TWITCH_TOKEN": "from-file",
		"WIKI_TOKEN":   "w123",
	})

	found := make(map[string]string, len(merged))
	for _, kv := range merged {
		sep := strings.IndexRune(kv, '=')
		found[kv[:sep]] = kv[sep+1:]
	}
	if found["TWITCH_TOKEN"] != "from-parent" {
		t.Fatalf("TWITCH_TOKEN overridden to %q", found["TWITCH_TOKEN"])
	}
	if found["WIKI_TOKEN"] != "w123" {
		t.Fatalf("WIKI_TOKEN = %q, want %q", found["WIKI_TOKEN"], "w123")
	}
	if found["HOME"] != "/home/avic" {
		t.Fatalf("HOME = %q, want untouched", found["HOME"])
	}
}

func TestApplyLeavesProcessEnvironmentAlone(t *testing.T) {
	t.Setenv("AVICBOT_APPLY_TEST", "original")

	Apply(os.Environ(), map[string]string{"AVICBOT_APPLY_TEST": "clobbered", "AVICBOT_APPLY_NEW": "x"})

	if got := os.Getenv("AVICBOT_APPLY_TEST"); got != "original" {
		t.Fatalf("process env mutated: AVICBOT_APPLY_TEST = %q", got)
	}
	if _, ok := os.LookupEnv("AVICBOT_APPLY_NEW"); ok {
		t.Fatal("process env mutated: AVICBOT_APPLY_NEW should not be set")
	}
}
