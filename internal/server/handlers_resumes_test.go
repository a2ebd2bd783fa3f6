package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/cloudflex/assistant/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seniorResume = "senior react engineer who led team of 5 and cut costs 30%"

func multipartResume(t *testing.T, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(uploadField, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func upload(t *testing.T, s *Server, path, filename string, data []byte) int {
	t.Helper()
	body, contentType := multipartResume(t, filename, data)
	return do(t, s, http.MethodPost, path, body, "Content-Type", contentType).Code
}

type scoreJSON struct {
	Document struct {
		Filename string `json:"filename"`
		Kind     string `json:"kind"`
		Words    int    `json:"words"`
	} `json:"document"`
	Analysis struct {
		ExperienceLevel string   `json:"experience_level"`
		Categories      []string `json:"categories"`
		Score           struct {
			Overall    int `json:"overall"`
			Experience int `json:"experience"`
		} `json:"score"`
		Verdict string `json:"verdict"`
	} `json:"analysis"`
}

func TestScoreResume_JSON(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/resumes/score", map[string]string{"text": seniorResume})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[scoreJSON](t, w)
	assert.Equal(t, "text", got.Document.Kind)
	assert.Equal(t, 12, got.Document.Words)
	assert.Equal(t, "senior", got.Analysis.ExperienceLevel)
	assert.Equal(t, 95, got.Analysis.Score.Experience)
	assert.Contains(t, got.Analysis.Categories, "frontend")
	assert.NotEmpty(t, got.Analysis.Verdict)
}

func TestScoreResume_Multipart(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartResume(t, "resume.txt", []byte(seniorResume))
	w := do(t, s, http.MethodPost, "/resumes/score", body, "Content-Type", contentType)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[scoreJSON](t, w)
	assert.Equal(t, "resume.txt", got.Document.Filename)
	assert.Equal(t, 95, got.Analysis.Score.Experience)
}

func TestScoreResume_Rejections(t *testing.T) {
	s := newTestServer(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	assert.Equal(t, http.StatusUnsupportedMediaType, upload(t, s, "/resumes/score", "photo.png", png))

	big := []byte(strings.Repeat("a", ingestion.MaxFileSize+10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, upload(t, s, "/resumes/score", "resume.txt", big))

	w := do(t, s, http.MethodPost, "/resumes/score", map[string]string{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScoreResume_BrokenPDF(t *testing.T) {
	s := newTestServer(t)

	code := upload(t, s, "/resumes/score", "resume.pdf", []byte("%PDF-1.4\nthis is not really a pdf"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestScoreResume_MissingFile(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	w := do(t, s, http.MethodPost, "/resumes/score", &buf, "Content-Type", mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type interviewJSON struct {
	ID        string `json:"id"`
	Stage     string `json:"stage"`
	Fallback  bool   `json:"fallback"`
	Questions []struct {
		ID int `json:"id"`
	} `json:"questions"`
	Answers []struct {
		QuestionID int `json:"question_id"`
		Score      int `json:"score"`
	} `json:"answers"`
	Current *struct {
		ID int `json:"id"`
	} `json:"current"`
	OverallScore int `json:"overall_score"`
}

type answerJSON struct {
	Answer struct {
		QuestionID int `json:"question_id"`
		Score      int `json:"score"`
	} `json:"answer"`
	Interview interviewJSON `json:"interview"`
}

func TestInterview_Flow(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/interviews", map[string]string{"text": seniorResume})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	iv := decode[interviewJSON](t, w)
	assert.Equal(t, "interview", iv.Stage)
	assert.False(t, iv.Fallback)
	require.NotEmpty(t, iv.Questions)
	require.NotNil(t, iv.Current)
	assert.Equal(t, iv.Questions[0].ID, iv.Current.ID)

	path := "/interviews/" + iv.ID + "/answers"
	for i := range iv.Questions {
		w = do(t, s, http.MethodPost, path, map[string]string{"answer": "I would profile first"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		got := decode[answerJSON](t, w)
		assert.Equal(t, iv.Questions[i].ID, got.Answer.QuestionID)
		assert.Equal(t, 62, got.Answer.Score)
	}

	w = do(t, s, http.MethodGet, "/interviews/"+iv.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	done := decode[interviewJSON](t, w)
	assert.Equal(t, "completed", done.Stage)
	assert.Nil(t, done.Current)
	assert.Len(t, done.Answers, len(iv.Questions))
	assert.Equal(t, 62, done.OverallScore)

	w = do(t, s, http.MethodPost, path, map[string]string{"answer": "one more"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestInterview_EmptyAnswer(t *testing.T) {
	s := newTestServer(t)

	iv := decode[interviewJSON](t, do(t, s, http.MethodPost, "/interviews", map[string]string{"text": seniorResume}))
	w := do(t, s, http.MethodPost, "/interviews/"+iv.ID+"/answers", map[string]string{"answer": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInterview_BrokenPDFFallsBack(t *testing.T) {
	s := newTestServer(t)

	body, contentType := multipartResume(t, "resume.pdf", []byte("%PDF-1.4\nthis is not really a pdf"))
	w := do(t, s, http.MethodPost, "/interviews", body, "Content-Type", contentType)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	iv := decode[interviewJSON](t, w)
	assert.True(t, iv.Fallback)
	assert.Equal(t, "interview", iv.Stage)
	assert.NotEmpty(t, iv.Questions)
}

func TestInterview_UnsupportedUploadRejected(t *testing.T) {
	s := newTestServer(t)

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)
	assert.Equal(t, http.StatusUnsupportedMediaType, upload(t, s, "/interviews", "photo.png", png))
	assert.Equal(t, 0, s.interviews.Len())
}

func TestInterview_NotFound(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/interviews/7c9e6679-7425-40de-944b-e07fc1f90ae7", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, http.MethodGet, "/interviews/nope", nil).Code)
}
