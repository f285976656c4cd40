package auditlog

import (
	"net/http"
	"testing"
)

func TestClassifyAction(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		want   string
	}{
		{name: "register", method: http.MethodPost, path: "/auth/register", want: "register"},
		{name: "add progress", method: http.MethodPost, path: "/goals/3/progress", want: "add_progress"},
		{name: "get progress", method: http.MethodGet, path: "/goals/3/progress", want: "get_progress"},
		{name: "entity logs", method: http.MethodGet, path: "/logs/entity/category/7", want: "get_entity_logs"},
		{name: "create", method: http.MethodPost, path: "/categories", want: "create"},
		{name: "update", method: http.MethodPut, path: "/transactions/12", want: "update"},
		{name: "delete", method: http.MethodDelete, path: "/tags/4", want: "delete"},
		{name: "read one", method: http.MethodGet, path: "/transactions/12", want: "read_one"},
		{name: "read all", method: http.MethodGet, path: "/transactions", want: "read_all"},
		{name: "read all with trailing slash", method: http.MethodGet, path: "/transactions/", want: "read_all"},
		{name: "summary is not an id", method: http.MethodGet, path: "/transactions/summary", want: "read_all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyAction(tt.method, tt.path); got != tt.want {
				t.Errorf("ClassifyAction(%q, %q) = %q, want %q", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyEntityType(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "auth", path: "/auth/register", want: "auth"},
		{name: "users", path: "/users/5", want: "user"},
		{name: "transactions", path: "/transactions", want: "transaction"},
		{name: "categories fold plural", path: "/categories/2/transactions", want: "category"},
		{name: "tags", path: "/tags/9/stats", want: "tag"},
		{name: "goals", path: "/goals/3/progress", want: "goal"},
		{name: "logs", path: "/logs/entity/category/7", want: "log"},
		{name: "health is unknown", path: "/health", want: ""},
		{name: "versioned prefix is skipped", path: "/api/v1/goals/3", want: "goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyEntityType(tt.path); got != tt.want {
				t.Errorf("ClassifyEntityType(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestTrailingID(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "numeric id", path: "/transactions/12", want: "12"},
		{name: "trailing slash", path: "/transactions/12/", want: "12"},
		{name: "no id", path: "/transactions", want: ""},
		{name: "word segment", path: "/transactions/summary", want: ""},
		{name: "mixed segment", path: "/tags/4abc", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrailingID(tt.path); got != tt.want {
				t.Errorf("TrailingID(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
