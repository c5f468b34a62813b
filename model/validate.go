package model

import (
	"fmt"
	"net"
	"strings"
	"time"
)

// deviceFields is the full set of properties accepted in a device payload.
// Anything outside this set is rejected.
var deviceFields = map[string]struct{}{
	"name":         {},
	"ip_address":   {},
	"type":         {},
	"location":     {},
	"status":       {},
	"last_checked": {},
}

var requiredFields = []string{"name", "ip_address", "type"}

func IsValidType(t string) bool {
	switch t {
	case TypeRouter, TypeSwitch, TypeServer:
		return true
	default:
		return false
	}
}

func IsValidStatus(s string) bool {
	switch s {
	case StatusOnline, StatusOffline, StatusUnknown:
		return true
	default:
		return false
	}
}

// IsValidIPv4 reports whether s is a dotted-quad IPv4 address. The octet
// count check keeps IPv6 and shorthand forms out.
func IsValidIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && strings.Count(s, ".") == 3
}

// ValidateDevice checks a decoded JSON payload against the device schema.
// In partial mode (updates) required fields are not enforced. All field
// errors are accumulated so the caller can report the complete map in one
// round trip. On success the returned fragment contains only recognized,
// normalized fields and is safe to persist as-is.
func ValidateDevice(payload map[string]any, partial bool) (map[string]any, map[string]string) {
	errs := map[string]string{}
	fragment := map[string]any{}

	for field := range payload {
		if _, ok := deviceFields[field]; !ok {
			errs[field] = "unknown field"
		}
	}

	if !partial {
		for _, field := range requiredFields {
			if _, ok := payload[field]; !ok {
				errs[field] = "required field is missing"
			}
		}
	}

	if raw, ok := payload["name"]; ok {
		if name, ok := raw.(string); !ok {
			errs["name"] = "must be a string"
		} else if len(name) < 1 || len(name) > 100 {
			errs["name"] = "must be between 1 and 100 characters"
		} else {
			fragment["name"] = name
		}
	}

	if raw, ok := payload["ip_address"]; ok {
		if ip, ok := raw.(string); !ok {
			errs["ip_address"] = "must be a string"
		} else if !IsValidIPv4(ip) {
			errs["ip_address"] = "must be a valid IPv4 address"
		} else {
			fragment["ip_address"] = ip
		}
	}

	if raw, ok := payload["type"]; ok {
		if t, ok := raw.(string); !ok {
			errs["type"] = "must be a string"
		} else if !IsValidType(t) {
			errs["type"] = fmt.Sprintf("must be one of: %s, %s, %s", TypeRouter, TypeSwitch, TypeServer)
		} else {
			fragment["type"] = t
		}
	}

	if raw, ok := payload["location"]; ok {
		if loc, ok := raw.(string); !ok {
			errs["location"] = "must be a string"
		} else if len(loc) > 200 {
			errs["location"] = "must be at most 200 characters"
		} else {
			fragment["location"] = loc
		}
	}

	if raw, ok := payload["status"]; ok {
		if s, ok := raw.(string); !ok {
			errs["status"] = "must be a string"
		} else if !IsValidStatus(s) {
			errs["status"] = fmt.Sprintf("must be one of: %s, %s, %s", StatusOnline, StatusOffline, StatusUnknown)
		} else {
			fragment["status"] = s
		}
	}

	if raw, ok := payload["last_checked"]; ok {
		if lc, ok := raw.(string); !ok {
			errs["last_checked"] = "must be a string"
		} else if _, err := time.Parse(time.RFC3339, lc); err != nil {
			errs["last_checked"] = "must be an RFC3339 date-time"
		} else {
			fragment["last_checked"] = lc
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return fragment, nil
}
