package model_test

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/kavia-common/netdevice-api/model"
)

func TestIsValidIPv4(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"Simple", "10.0.0.5", true},
		{"Max", "255.255.255.255", true},
		{"Zero", "0.0.0.0", true},
		{"OctetTooLarge", "256.1.1.1", false},
		{"ThreeOctets", "10.0.0", false},
		{"FiveOctets", "10.0.0.1.2", false},
		{"IPv6", "::1", false},
		{"MappedIPv6", "::ffff:10.0.0.5", false},
		{"Hostname", "not-an-ip", false},
		{"Empty", "", false},
		{"TrailingDot", "10.0.0.5.", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, model.IsValidIPv4(tc.in))
		})
	}
}

func TestIsValidType(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"router", true},
		{"switch", true},
		{"server", true},
		{"Router", false},
		{"firewall", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.IsValidType(tc.in))
	}
}

func TestIsValidStatus(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"online", true},
		{"offline", true},
		{"unknown", true},
		{"Online", false},
		{"down", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.IsValidStatus(tc.in))
	}
}

func TestValidateDevice_Create(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		fragment, errs := model.ValidateDevice(map[string]any{
			"name":       "core-sw1",
			"ip_address": "10.0.0.5",
			"type":       "switch",
		}, false)
		if errs != nil {
			t.Fatalf("expected no errors, got %v", errs)
		}
		if fragment["name"] != "core-sw1" || fragment["ip_address"] != "10.0.0.5" || fragment["type"] != "switch" {
			t.Fatalf("unexpected fragment: %v", fragment)
		}
	})

	t.Run("MissingRequired", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{"name": "core-sw1"}, false)
		if len(errs) != 2 {
			t.Fatalf("expected 2 errors, got %v", errs)
		}
		for _, field := range []string{"ip_address", "type"} {
			if _, ok := errs[field]; !ok {
				t.Fatalf("expected error for %s, got %v", field, errs)
			}
		}
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":       "core-sw1",
			"ip_address": "10.0.0.5",
			"type":       "switch",
			"vendor":     "acme",
		}, false)
		if _, ok := errs["vendor"]; !ok {
			t.Fatalf("expected error for unknown field vendor, got %v", errs)
		}
	})

	t.Run("AccumulatesAllErrors", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":       "",
			"ip_address": "not-an-ip",
			"type":       "firewall",
			"status":     "down",
			"extra":      true,
		}, false)
		for _, field := range []string{"name", "ip_address", "type", "status", "extra"} {
			if _, ok := errs[field]; !ok {
				t.Fatalf("expected error for %s, got %v", field, errs)
			}
		}
	})

	t.Run("NonStringValues", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":       42,
			"ip_address": "10.0.0.5",
			"type":       "switch",
		}, false)
		assert.Equal(t, errs["name"], "must be a string")
	})

	t.Run("NameTooLong", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":       strings.Repeat("a", 101),
			"ip_address": "10.0.0.5",
			"type":       "switch",
		}, false)
		if _, ok := errs["name"]; !ok {
			t.Fatalf("expected error for oversized name, got %v", errs)
		}
	})

	t.Run("LocationTooLong", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":       "core-sw1",
			"ip_address": "10.0.0.5",
			"type":       "switch",
			"location":   strings.Repeat("b", 201),
		}, false)
		if _, ok := errs["location"]; !ok {
			t.Fatalf("expected error for oversized location, got %v", errs)
		}
	})

	t.Run("BadLastChecked", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{
			"name":         "core-sw1",
			"ip_address":   "10.0.0.5",
			"type":         "switch",
			"last_checked": "yesterday",
		}, false)
		if _, ok := errs["last_checked"]; !ok {
			t.Fatalf("expected error for bad last_checked, got %v", errs)
		}
	})
}

func TestValidateDevice_Update(t *testing.T) {
	t.Run("SingleField", func(t *testing.T) {
		fragment, errs := model.ValidateDevice(map[string]any{"location": "rack 9"}, true)
		if errs != nil {
			t.Fatalf("expected no errors, got %v", errs)
		}
		if len(fragment) != 1 || fragment["location"] != "rack 9" {
			t.Fatalf("unexpected fragment: %v", fragment)
		}
	})

	t.Run("EmptyPayload", func(t *testing.T) {
		fragment, errs := model.ValidateDevice(map[string]any{}, true)
		if errs != nil {
			t.Fatalf("expected no field errors for empty payload, got %v", errs)
		}
		// The handler turns an empty fragment into a 400.
		if len(fragment) != 0 {
			t.Fatalf("expected empty fragment, got %v", fragment)
		}
	})

	t.Run("AllUnknown", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{"vendor": "acme"}, true)
		if _, ok := errs["vendor"]; !ok {
			t.Fatalf("expected error for unknown field, got %v", errs)
		}
	})

	t.Run("InvalidIP", func(t *testing.T) {
		_, errs := model.ValidateDevice(map[string]any{"ip_address": "not-an-ip"}, true)
		assert.Equal(t, errs["ip_address"], "must be a valid IPv4 address")
	})

	t.Run("NoRequiredEnforcement", func(t *testing.T) {
		fragment, errs := model.ValidateDevice(map[string]any{"status": "offline"}, true)
		if errs != nil {
			t.Fatalf("expected no errors, got %v", errs)
		}
		if fragment["status"] != "offline" {
			t.Fatalf("unexpected fragment: %v", fragment)
		}
	})
}
