package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rdpaiva/future-self/internal/session"
	"github.com/rdpaiva/future-self/internal/storage"
	"github.com/rdpaiva/future-self/internal/vision"
)

func TestPhotosUploadAndList(t *testing.T) {
	objects, err := storage.NewFileStore(t.TempDir(), testBaseURL)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	app := &App{
		Normalizer:     vision.NewNormalizer(nil),
		Objects:        objects,
		Logger:         zerolog.Nop(),
		StorageBaseURL: testBaseURL,
	}

	img := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("selfie"))
	body, _ := json.Marshal(map[string]string{"image": img})
	rr := httptest.NewRecorder()
	app.PhotosUpload(rr, authedRequest(http.MethodPost, "/api/photos", string(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var created map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if !strings.Contains(created["url"], "/user-1/profile-") || !strings.HasSuffix(created["url"], ".png") {
		t.Fatalf("url = %q", created["url"])
	}

	rr = httptest.NewRecorder()
	app.PhotosList(rr, authedRequest(http.MethodGet, "/api/photos", ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var listed struct {
		Photos []photoItem `json:"photos"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Photos) != 1 || !strings.HasPrefix(listed.Photos[0].Name, "profile-") {
		t.Fatalf("unexpected photos %+v", listed.Photos)
	}
}

func TestPhotosUploadRejectsEmptyImage(t *testing.T) {
	app := &App{Normalizer: vision.NewNormalizer(nil), Logger: zerolog.Nop()}
	rr := httptest.NewRecorder()
	app.PhotosUpload(rr, authedRequest(http.MethodPost, "/api/photos", `{"image":""}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestPreselectRoundTrip(t *testing.T) {
	app := &App{
		Handoff: session.NewMemoryHandoff(time.Minute),
		Logger:  zerolog.Nop(),
	}

	rr := httptest.NewRecorder()
	app.PreselectPut(rr, httptest.NewRequest(http.MethodPost, "/api/session/preselect",
		strings.NewReader(`{"sessionId":"s-1","image":"https://cdn.test/visions/user-1/profile-1.jpg"}`)))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("put status = %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	app.PreselectTake(rr, httptest.NewRequest(http.MethodGet, "/api/session/preselect?sessionId=s-1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("take status = %d", rr.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	if resp["image"] != "https://cdn.test/visions/user-1/profile-1.jpg" {
		t.Fatalf("image = %q", resp["image"])
	}

	// the slot clears after the first read
	rr = httptest.NewRecorder()
	app.PreselectTake(rr, httptest.NewRequest(http.MethodGet, "/api/session/preselect?sessionId=s-1", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second take status = %d", rr.Code)
	}
}
