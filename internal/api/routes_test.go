package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"evolution/fitness-dashboard/internal/repository/gormdb"
	"evolution/fitness-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

type fakeFileStorage struct{}

func (fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (fakeFileStorage) DeleteObject(context.Context, string) error { return nil }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gormdb.OpenInMemory()
	require.NoError(t, err)

	exerciseRepo := gormdb.NewExerciseRepository(db)
	goalRepo := gormdb.NewGoalRepository(db)
	profileRepo := gormdb.NewProfileRepository(db)

	router := gin.New()
	SetupRoutes(router, testJWTSecret,
		service.NewExerciseService(exerciseRepo),
		service.NewGoalService(goalRepo),
		service.NewProfileService(profileRepo, fakeFileStorage{}),
		service.NewAnalysisService(exerciseRepo),
		service.NewCoachService(exerciseRepo),
		service.NewExportService(exerciseRepo, goalRepo, profileRepo),
	)
	return router
}

func signToken(t *testing.T, userID, name string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  userID,
		"name": name,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/exercises", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/exercises", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExerciseLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/exercises", token, ExerciseRequest{
		Name: "Supino Reto", Category: "Peito/Tríceps",
		LastWeight: 80, LastDate: "1 Out",
		PBWeight: 100, PBDate: "20 Set", AvgVolume: 2.4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created ExerciseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.GreaterOrEqual(t, created.Progress, 60)
	assert.Less(t, created.Progress, 100)
	assert.Empty(t, created.History)
	assert.Equal(t, 2.4, created.DisplayVolume)

	// Updating both load and PR pushes both superseded values, PR first.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/exercises/"+created.ID, token, ExerciseRequest{
		Name: "Supino Reto", Category: "Peito/Tríceps",
		LastWeight: 85, LastDate: "8 Out",
		PBWeight: 105, PBDate: "8 Out", AvgVolume: 2.4,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated ExerciseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Len(t, updated.History, 2)
	assert.Equal(t, "PR", updated.History[0].Type)
	assert.Equal(t, 100.0, updated.History[0].Weight)
	assert.Equal(t, "LOAD", updated.History[1].Type)
	assert.Equal(t, 80.0, updated.History[1].Weight)
	assert.Equal(t, created.Progress, updated.Progress)

	// Monthly timeframe scales only the displayed volume.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/exercises?timeframe=MONTH", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []ExerciseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, 2.4, listed[0].AvgVolume)
	assert.Equal(t, 10.3, listed[0].DisplayVolume)

	// Another user's token cannot touch the exercise.
	otherToken := signToken(t, "user-2", "Outro")
	rec = doJSON(t, router, http.MethodPut, "/api/v1/exercises/"+created.ID, otherToken, ExerciseRequest{Name: "X"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/exercises/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGoalLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/goals", token, CreateGoalRequest{
		Title: "Supino 120kg", Description: "Até dezembro",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var goal GoalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.NotEmpty(t, goal.ID)

	// Both fields are required.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/goals", token, map[string]string{"title": "sem descrição"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/goals", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var goals []GoalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goals))
	assert.Len(t, goals, 1)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/goals/"+goal.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/goals/"+goal.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProfileSeededFromToken(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Rafael", profile.Name)
	assert.Equal(t, 85.0, profile.Weight)
	assert.Equal(t, "Intermediário", profile.Level)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/profile", token, UpdateProfileRequest{
		Name: "Rafael Silva", Weight: 83.5, Level: "Avançado",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "Rafael Silva", profile.Name)
	assert.Equal(t, 83.5, profile.Weight)
}

func TestPhotoUploadContract(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/profile/photo", token, PhotoUploadRequest{ContentType: "image/jpeg"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var upload service.PhotoUpload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))
	assert.Contains(t, upload.Key, "profile-photos/user-1/")
	assert.Equal(t, "https://storage.test/upload/"+upload.Key, upload.URL)

	// Saving the key resolves it to a download URL on the next read.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/profile", token, UpdateProfileRequest{
		Name: "Rafael", PhotoKey: &upload.Key,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.NotNil(t, profile.Photo)
	assert.Equal(t, "https://storage.test/download/"+upload.Key, *profile.Photo)
}

func TestAnalysisAndCoach(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	// Empty state first.
	rec := doJSON(t, router, http.MethodGet, "/api/v1/coach/tip", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Inicie seus registros")

	today := time.Now()
	lastDate := fmt.Sprintf("%d %s", today.Day(), [...]string{
		"Jan", "Fev", "Mar", "Abr", "Mai", "Jun",
		"Jul", "Ago", "Set", "Out", "Nov", "Dez",
	}[today.Month()-1])

	for _, body := range []ExerciseRequest{
		{Name: "Supino Reto", Category: "Peito/Tríceps", LastWeight: 80, LastDate: lastDate, PBWeight: 100, AvgVolume: 2.4},
		{Name: "Agachamento", Category: "Pernas", LastWeight: 120, LastDate: lastDate, PBWeight: 140, AvgVolume: 3.1},
	} {
		rec = doJSON(t, router, http.MethodPost, "/api/v1/exercises", token, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/analysis?window=WEEK&sort=name", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var analysis AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, []string{"TODOS", "PEITO", "PERNAS"}, analysis.Categories)
	require.Equal(t, 2, analysis.Total)
	assert.Equal(t, "Agachamento", analysis.Rows[0].Name)
	assert.Len(t, analysis.Rows[0].Trend, 8)
	assert.Contains(t, analysis.Insight, "Baseado em 2 exercícios chave")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/analysis?category=PEITO", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	assert.Equal(t, 1, analysis.Total)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/coach/analysis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "eficiência média")
}

func TestExports(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, "user-1", "Rafael")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/export/csv", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "relatorio_evolution_")
	assert.Contains(t, rec.Body.String(), "RELATÓRIO EVOLUTION - DASHBOARD DE PERFORMANCE")
	// No saved profile row yet, so the export uses the default identity.
	assert.Contains(t, rec.Body.String(), "Nome,Atleta Evolution")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/export/report", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Relatório Evolution")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/analysis/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "evolution_performance_todos_")
	assert.Contains(t, rec.Body.String(), "Exercicio,Categoria")
}
