package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// ExpandEnv replaces every ${env.KEY} with the value of environment variable
// KEY, or "" when unset. An expression without a closing brace is kept as is;
// a key with characters other than letters, digits or '_' keeps its prefix
// literal and scanning resumes right after it.
func ExpandEnv(text string) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	var out strings.Builder
	for {
		start := strings.Index(text, envPrefix)
		if start < 0 {
			out.WriteString(text)
			return out.String()
		}
		out.WriteString(text[:start])
		rest := text[start+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(text[start:])
			return out.String()
		}
		key := rest[:end]
		if !isEnvKey(key) {
			out.WriteString(envPrefix)
			text = rest
			continue
		}
		out.WriteString(os.Getenv(key))
		text = rest[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
