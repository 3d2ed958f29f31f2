// Package envfile reads dotenv-style configuration files shared by the
// supervised bots. Parsing is deliberately forgiving: a missing file and any
// malformed line are skipped silently, because the env file is optional and
// the supervisor must start regardless of its contents.
package envfile

import (
	"bufio"
	"os"
	"strings"
)

// Load parses the dotenv file at path into a key/value map. A file that does
// not exist or cannot be opened yields a nil map. Lines are handled
// independently: blank lines, full-line # comments, lines without '=' and
// lines with an empty key are skipped, and later duplicates of a key are
// ignored (the first occurrence wins). Values wrapped in one matching pair of
// single or double quotes are unquoted once; no escape processing is applied.
func Load(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var vars map[string]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sep := strings.IndexRune(line, '=')
		if sep < 0 {
			continue
		}
		key := strings.TrimSpace(line[:sep])
		if key == "" {
			continue
		}
		// The first occurrence of a key wins, like the non-override merge
		// against the process environment.
		if _, ok := vars[key]; ok {
			continue
		}
		value := unquote(strings.TrimSpace(line[sep+1:]))
		if vars == nil {
			vars = make(map[string]string)
		}
		vars[key] = value
	}
	// Scanner errors leave the variables collected so far in place; partial
	// reads of a shared config file are still useful to the bots.
	return vars
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first != last {
		return value
	}
	if first == '"' || first == '\'' {
		return value[1 : len(value)-1]
	}
	return value
}

// Apply merges vars into a copy of environ without overwriting variables that
// are already present. The process environment is never touched: the returned
// slice is a snapshot intended for exec.Cmd.Env.
func Apply(environ []string, vars map[string]string) []string {
	merged := append([]string(nil), environ...)
	if len(vars) == 0 {
		return merged
	}

	existing := make(map[string]struct{}, len(environ))
	for _, kv := range environ {
		if sep := strings.IndexRune(kv, '='); sep >= 0 {
			existing[kv[:sep]] = struct{}{}
		}
	}

	for key, value := range vars {
		if _, ok := existing[key]; ok {
			continue
		}
		merged = append(merged, key+"="+value)
	}
	return merged
}
