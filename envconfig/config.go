package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

var (
	// Set via GJSON_DEBUG in the environment: 1 for debug, 2 for trace
	Debug int
	// Set via GJSON_COMMENTS in the environment
	Comments bool
	// Set via GJSON_MAX_DEPTH in the environment
	MaxDepth int
	// Set via GJSON_LANG in the environment
	Lang string
)

type EnvVar struct {
	Name        string
	Value       any
	Description string
}

func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"GJSON_DEBUG":     {"GJSON_DEBUG", Debug, "Show additional debug information (1 debug, 2 trace)"},
		"GJSON_COMMENTS":  {"GJSON_COMMENTS", Comments, "Accept // and /* */ comments in input"},
		"GJSON_MAX_DEPTH": {"GJSON_MAX_DEPTH", MaxDepth, "Maximum container nesting (default 0, unlimited)"},
		"GJSON_LANG":      {"GJSON_LANG", Lang, "Language of error messages: en or ja (default \"en\")"},
	}
}

func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

// Clean quotes and spaces from the value
func clean(key string) string {
	return strings.Trim(os.Getenv(key), "\"' ")
}

func init() {
	LoadConfig()
}

func LoadConfig() {
	Debug = 0
	if debug := clean("GJSON_DEBUG"); debug != "" {
		if n, err := strconv.Atoi(debug); err == nil {
			Debug = max(n, 0)
		} else if b, err := strconv.ParseBool(debug); err == nil {
			if b {
				Debug = 1
			}
		} else {
			Debug = 1
		}
	}

	Comments = false
	if c := clean("GJSON_COMMENTS"); c != "" {
		b, err := strconv.ParseBool(c)
		if err != nil {
			slog.Error("invalid setting, ignoring", "GJSON_COMMENTS", c, "error", err)
		} else {
			Comments = b
		}
	}

	MaxDepth = 0
	if md := clean("GJSON_MAX_DEPTH"); md != "" {
		n, err := strconv.Atoi(md)
		if err != nil || n < 0 {
			slog.Error("invalid setting must be zero or greater", "GJSON_MAX_DEPTH", md, "error", err)
		} else {
			MaxDepth = n
		}
	}

	Lang = "en"
	if l := strings.ToLower(clean("GJSON_LANG")); l != "" {
		switch l {
		case "en", "ja":
			Lang = l
		default:
			slog.Error("unsupported language, using en", "GJSON_LANG", l)
		}
	}
}
