package auditlog

import (
	"reflect"
	"testing"
)

func TestRedactMasksSensitiveKeys(t *testing.T) {
	input := map[string]any{
		"email":         "alice@example.com",
		"password":      "hunter2hunter2",
		"refresh_token": "abc.def.ghi",
		"api_key":       "k-123",
		"client_secret": "s-456",
		"Authorization": "Bearer abc",
		"amount":        42.5,
	}

	got, ok := Redact(input).(map[string]any)
	if !ok {
		t.Fatalf("Redact returned %T, want map", got)
	}

	for _, key := range []string{"password", "refresh_token", "api_key", "client_secret", "Authorization"} {
		if got[key] != RedactedValue {
			t.Errorf("key %q = %v, want %q", key, got[key], RedactedValue)
		}
	}
	if got["email"] != "alice@example.com" {
		t.Errorf("email was modified: %v", got["email"])
	}
	if got["amount"] != 42.5 {
		t.Errorf("amount was modified: %v", got["amount"])
	}
}

func TestRedactRecursesThroughNestedValues(t *testing.T) {
	input := map[string]any{
		"user": map[string]any{
			"name":     "Alice",
			"password": "hunter2hunter2",
		},
		"accounts": []any{
			map[string]any{"label": "main", "token": "t-1"},
		},
	}

	got := Redact(input).(map[string]any)

	user := got["user"].(map[string]any)
	if user["password"] != RedactedValue {
		t.Errorf("nested password = %v, want %q", user["password"], RedactedValue)
	}
	if user["name"] != "Alice" {
		t.Errorf("nested name was modified: %v", user["name"])
	}

	account := got["accounts"].([]any)[0].(map[string]any)
	if account["token"] != RedactedValue {
		t.Errorf("token inside array = %v, want %q", account["token"], RedactedValue)
	}
}

func TestRedactDoesNotModifyTheInput(t *testing.T) {
	input := map[string]any{"password": "hunter2hunter2"}
	want := map[string]any{"password": "hunter2hunter2"}

	Redact(input)

	if !reflect.DeepEqual(input, want) {
		t.Errorf("input was modified: %v", input)
	}
}

func TestRedactPassesScalarsThrough(t *testing.T) {
	if got := Redact("plain"); got != "plain" {
		t.Errorf("Redact(string) = %v", got)
	}
	if got := Redact(nil); got != nil {
		t.Errorf("Redact(nil) = %v", got)
	}
}
