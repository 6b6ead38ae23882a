package mimiry

import (
	"errors"
	"testing"
	"time"
)

func TestClassifyStatus_Success(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if err := classifyStatus(status, map[string]any{"error": "ignored"}); err != nil {
			t.Errorf("status %d: expected nil, got %v", status, err)
		}
	}
}

func TestClassifyStatus_MappedKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{401, KindAuthentication},
		{402, KindInsufficientCredits},
		{403, KindInsufficientScope},
		{404, KindNotFound},
		{429, KindRateLimit},
		{500, KindServer},
		{503, KindServer},
		{400, KindGeneric},
		{422, KindGeneric},
	}

	for _, tc := range cases {
		body := map[string]any{"error": "boom"}
		err := classifyStatus(tc.status, body)

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *Error, got %T", tc.status, err)
		}
		if apiErr.Kind != tc.kind {
			t.Errorf("status %d: expected kind %s, got %s", tc.status, tc.kind, apiErr.Kind)
		}
		if apiErr.StatusCode != tc.status {
			t.Errorf("status %d: status code not carried, got %d", tc.status, apiErr.StatusCode)
		}
		if apiErr.Message != "boom" {
			t.Errorf("status %d: expected message boom, got %q", tc.status, apiErr.Message)
		}
		if apiErr.Body["error"] != "boom" {
			t.Errorf("status %d: original body not attached", tc.status)
		}
	}
}

func TestClassifyStatus_MessageExtraction(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"error key", map[string]any{"error": "bad key"}, "bad key"},
		{"message fallback", map[string]any{"message": "x"}, "x"},
		{"error preferred over message", map[string]any{"error": "a", "message": "b"}, "a"},
		{"empty body", map[string]any{}, "Unknown error"},
		{"nil body", nil, "Unknown error"},
	}

	for _, tc := range cases {
		err := classifyStatus(400, tc.body)
		var apiErr *Error
		if !errors.As(err, &apiErr) {
			t.Fatalf("%s: expected *Error, got %T", tc.name, err)
		}
		if apiErr.Message != tc.want {
			t.Errorf("%s: expected message %q, got %q", tc.name, tc.want, apiErr.Message)
		}
	}
}

func TestError_Rendering(t *testing.T) {
	withStatus := &Error{Kind: KindNotFound, Message: "no such job", StatusCode: 404}
	if got := withStatus.Error(); got != "[404] no such job" {
		t.Errorf("expected [404] no such job, got %q", got)
	}

	clientSide := &Error{Kind: KindConfiguration, Message: "api_key is required"}
	if got := clientSide.Error(); got != "api_key is required" {
		t.Errorf("expected bare message, got %q", got)
	}
}

func TestTimeoutError_Rendering(t *testing.T) {
	err := &TimeoutError{JobID: "job-1", Timeout: time.Hour, LastStatus: "running"}
	want := "timed out waiting for job job-1 after 1h0m0s (last status: running)"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
