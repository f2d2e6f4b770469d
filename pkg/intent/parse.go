package intent

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseStatus names the outcome of extracting an intent from model output.
// Malformed and empty outputs are expected, frequent inputs to the fallback
// path, not errors.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseMalformed
	ParseEmpty
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseMalformed:
		return "malformed"
	case ParseEmpty:
		return "empty"
	}
	return "unknown"
}

// ExtractIntent scrapes the first JSON object out of raw model output and
// decodes it. Models wrap their JSON in prose, code fences, or whitespace, so
// the scan is positional: everything from the first "{" to the last "}".
// ParseOK requires a non-empty tool field; parameters default to an empty map.
func ExtractIntent(raw string) (Intent, ParseStatus) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Intent{}, ParseEmpty
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return Intent{}, ParseMalformed
	}

	var decoded struct {
		Tool       string                 `json:"tool"`
		Parameters map[string]interface{} `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &decoded); err != nil {
		return Intent{}, ParseMalformed
	}
	if decoded.Tool == "" {
		return Intent{}, ParseMalformed
	}

	params := make(map[string]string, len(decoded.Parameters))
	for key, value := range decoded.Parameters {
		switch v := value.(type) {
		case string:
			params[key] = v
		case float64:
			params[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			params[key] = strconv.FormatBool(v)
		default:
			// nested values are dropped; parameters are flat strings
		}
	}

	return Intent{Tool: Tool(decoded.Tool), Params: params}, ParseOK
}
