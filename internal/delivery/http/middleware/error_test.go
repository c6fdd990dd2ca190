package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

func newErrorTestApp(h fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(nil).Middleware())
	app.Get("/", h)
	return app
}

func TestErrorMiddleware_AppErrorStatusPassesThrough(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
		wantCode   string
	}{
		{
			name:       "business 409",
			err:        NewAppError(fiber.StatusConflict, "Company has jobs", fiber.Map{"code": "company_has_jobs"}, nil),
			wantStatus: fiber.StatusConflict,
			wantMsg:    "Company has jobs",
			wantCode:   "company_has_jobs",
		},
		{
			name:       "upstream 503 keeps its code",
			err:        NewAppError(fiber.StatusServiceUnavailable, "Skill directory unavailable", fiber.Map{"code": "skill_directory_unavailable"}, errors.New("connection refused")),
			wantStatus: fiber.StatusServiceUnavailable,
			wantMsg:    "Skill directory unavailable",
			wantCode:   "skill_directory_unavailable",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newErrorTestApp(func(fiber.Ctx) error { return tc.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}

			var out struct {
				Status  int    `json:"status"`
				Message string `json:"message"`
				Data    struct {
					Code string `json:"code"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if out.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", out.Message, tc.wantMsg)
			}
			if out.Data.Code != tc.wantCode {
				t.Fatalf("code = %q, want %q", out.Data.Code, tc.wantCode)
			}
		})
	}
}

func TestErrorMiddleware_UnknownErrorIsMasked(t *testing.T) {
	app := newErrorTestApp(func(fiber.Ctx) error { return errors.New("pq: relation does not exist") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var out struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Message != response.MessageInternalServerError {
		t.Fatalf("message = %q, want %q", out.Message, response.MessageInternalServerError)
	}
	if string(out.Data) != "null" {
		t.Fatalf("internal details leaked: %s", out.Data)
	}
}

func TestErrorMiddleware_ZeroStatusAppErrorIsMasked(t *testing.T) {
	app := newErrorTestApp(func(fiber.Ctx) error {
		return NewAppError(0, "misbuilt", fiber.Map{"code": "nope"}, nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}
