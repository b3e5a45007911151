package notifier

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/babysteps/babysteps/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func writeLockfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), constants.NotifierLockfileName)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		if pid == 4242 {
			return &mockProcess{pid: pid, executable: constants.TrayExecutablePrefix}, nil
		}
		return nil, nil
	}

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", "8765|4242|s3cret", false},
		{"missing parts", "8765|4242", true},
		{"bad port", "abc|4242|s3cret", true},
		{"port out of range", "99999|4242|s3cret", true},
		{"bad pid", "8765|nope|s3cret", true},
		{"empty secret", "8765|4242| ", true},
		{"dead process", "8765|1|s3cret", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeLockfile(t, tt.content)
			port, secret, err := findAndValidateTrayProcess(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if port != "8765" || secret != "s3cret" {
					t.Errorf("port, secret = %q, %q", port, secret)
				}
			}
		})
	}
}

func TestFindAndValidateTrayProcess_MissingLockfile(t *testing.T) {
	_, _, err := findAndValidateTrayProcess(filepath.Join(t.TempDir(), "nope.lock"))
	if err == nil {
		t.Error("expected error for missing lockfile")
	}
}

func TestFindAndValidateTrayProcess_WrongExecutable(t *testing.T) {
	oldFindProcessFunc := findProcessFunc
	defer func() { findProcessFunc = oldFindProcessFunc }()
	findProcessFunc = func(pid int) (ps.Process, error) {
		return &mockProcess{pid: pid, executable: "definitely-not-ours"}, nil
	}

	path := writeLockfile(t, "8765|4242|s3cret")
	if _, _, err := findAndValidateTrayProcess(path); err == nil {
		t.Error("expected error for foreign process on the lockfile pid")
	}
}

func TestSendNotification(t *testing.T) {
	var gotSecret string
	var gotPayload WebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSecret = r.Header.Get("X-Babysteps-Secret")
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("bad payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	payload := WebhookPayload{Text: "Time for your habit: Stretch", DurationMs: constants.NotificationDurationMs}
	if err := sendNotification(u.Port(), "s3cret", payload); err != nil {
		t.Fatalf("sendNotification() failed: %v", err)
	}

	if gotSecret != "s3cret" {
		t.Errorf("secret header = %q", gotSecret)
	}
	if gotPayload.Text != payload.Text || gotPayload.DurationMs != payload.DurationMs {
		t.Errorf("payload = %+v", gotPayload)
	}
}

func TestSendNotification_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("bad secret"))
	}))
	defer server.Close()

	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	if err := sendNotification(u.Port(), "wrong", WebhookPayload{Text: "x"}); err == nil {
		t.Error("expected error for non-200 response")
	}
}
