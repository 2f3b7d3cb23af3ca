// Package netx contains HTTP helpers shared by the REST client: status
// classification and extraction of a human-readable message from an error
// response body.
package netx

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/fmsdesk/internal/common"
)

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// messageKeys are checked in order; the backend is not consistent about which
// one it fills.
var messageKeys = []string{"message", "detail", "error"}

// ErrorMessage extracts the server-provided message from an error body,
// falling back to common.GenericErrorMessage. Field-validation bodies such as
// {"email": ["already taken"]} yield "email: already taken" for the first
// field in alphabetical order.
func ErrorMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return common.GenericErrorMessage
	}

	for _, k := range messageKeys {
		if s := asText(payload[k]); s != "" {
			return s
		}
	}

	fields := make([]string, 0, len(payload))
	for k := range payload {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	for _, f := range fields {
		if s := asText(payload[f]); s != "" {
			return fmt.Sprintf("%s: %s", f, s)
		}
	}
	return common.GenericErrorMessage
}

func asText(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if s := asText(item); s != "" {
				return s
			}
		}
	}
	return ""
}
