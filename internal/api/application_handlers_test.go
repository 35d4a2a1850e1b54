package api_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// applicationForm builds the multipart submission body.
type applicationForm struct {
	fields   map[string]string
	filename string
	file     []byte
}

func (f applicationForm) encode(t *testing.T) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range f.fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if f.filename != "" {
		part, err := writer.CreateFormFile("resume", f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.file)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func (env *testEnv) submitApplication(t *testing.T, form applicationForm) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := form.encode(t)
	req := httptest.NewRequest(http.MethodPost, "/api/applications", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func validApplicationFields(vacancyID string) map[string]string {
	return map[string]string{
		"vacancyId":   vacancyID,
		"name":        "Nimal Silva",
		"email":       "nimal@example.com",
		"phone":       "0771234567",
		"coverLetter": "I have five years of retail experience.",
	}
}

func TestApplicationSubmit_WithResumeFile(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)

	rec := env.submitApplication(t, applicationForm{
		fields:   validApplicationFields("v1"),
		filename: "resume.pdf",
		file:     []byte("%PDF-1.4 fake"),
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	data, _ := envelope["data"].(map[string]any)
	require.NotNil(t, data)

	code, _ := data["applicationCode"].(string)
	assert.True(t, strings.HasPrefix(code, "HT-"), "code %q should carry the HT- prefix", code)
	assert.Equal(t, model.ApplicationStatusPending, data["status"])

	assert.Contains(t, env.publisher.types(), event.TypeApplicationSubmitted)

	apps, err := env.mem.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.NotEmpty(t, apps[0].ResumePath)
	assert.Empty(t, apps[0].ResumeDriveLink)
}

func TestApplicationSubmit_WithDriveLink(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)

	fields := validApplicationFields("v1")
	fields["resumeDriveLink"] = "https://drive.google.com/file/d/abc123"

	rec := env.submitApplication(t, applicationForm{fields: fields})

	require.Equal(t, http.StatusCreated, rec.Code)

	apps, err := env.mem.ListApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Empty(t, apps[0].ResumePath)
	assert.Equal(t, "https://drive.google.com/file/d/abc123", apps[0].ResumeDriveLink)
}

func TestApplicationSubmit_Rejections(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)
	seedVacancy(t, env, "v-closed", model.VacancyStatusClosed)

	tests := []struct {
		name string
		form applicationForm
		code int
	}{
		{
			"no resume and no link",
			applicationForm{fields: validApplicationFields("v1")},
			http.StatusBadRequest,
		},
		{
			"wrong file type",
			applicationForm{fields: validApplicationFields("v1"), filename: "resume.exe", file: []byte("MZ")},
			http.StatusBadRequest,
		},
		{
			"unknown vacancy",
			applicationForm{fields: validApplicationFields("missing")},
			http.StatusNotFound,
		},
		{
			"closed vacancy",
			applicationForm{fields: validApplicationFields("v-closed")},
			http.StatusConflict,
		},
		{
			"missing email",
			applicationForm{fields: map[string]string{"vacancyId": "v1", "name": "Nimal", "phone": "0771234567"}},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.submitApplication(t, tt.form)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestApplicationCheckStatus(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)

	fields := validApplicationFields("v1")
	fields["resumeDriveLink"] = "https://drive.google.com/file/d/abc123"
	rec := env.submitApplication(t, applicationForm{fields: fields})
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	code := envelope["data"].(map[string]any)["applicationCode"].(string)

	rec = env.do(t, http.MethodPost, "/api/applications/check-status", map[string]string{
		"applicationCode": code,
		"email":           "nimal@example.com",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	envelope = decodeEnvelope(t, rec)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, model.ApplicationStatusPending, data["status"])

	// The wrong email never reveals another applicant's status.
	rec = env.do(t, http.MethodPost, "/api/applications/check-status", map[string]string{
		"applicationCode": code,
		"email":           "someone-else@example.com",
	}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApplicationUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	seedVacancy(t, env, "v1", model.VacancyStatusActive)

	fields := validApplicationFields("v1")
	fields["resumeDriveLink"] = "https://drive.google.com/file/d/abc123"
	require.Equal(t, http.StatusCreated, env.submitApplication(t, applicationForm{fields: fields}).Code)

	apps, err := env.mem.ListApplications(context.Background())
	require.NoError(t, err)
	id := apps[0].ID

	admin := env.adminToken(t)

	rec := env.do(t, http.MethodPut, "/api/applications/"+id+"/status", map[string]string{
		"status": model.ApplicationStatusShortlisted,
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, env.publisher.types(), event.TypeApplicationStatusChanged)

	updated, err := env.mem.GetApplication(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationStatusShortlisted, updated.Status)

	// Setting the same status again publishes no second change event.
	before := len(env.publisher.types())
	rec = env.do(t, http.MethodPut, "/api/applications/"+id+"/status", map[string]string{
		"status": model.ApplicationStatusShortlisted,
	}, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, env.publisher.types(), before)

	rec = env.do(t, http.MethodPut, "/api/applications/"+id+"/status", map[string]string{
		"status": "promoted",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationList_RequiresAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/applications", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/applications", nil, env.adminToken(t))
	assert.Equal(t, http.StatusOK, rec.Code)
}
