package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func TestPatientTokenRoundTrip(t *testing.T) {
	token, err := GeneratePatientToken(42, "patient@test.com")
	require.NoError(t, err)

	patientID, err := AuthenticatePatient(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), patientID)
}

func TestDoctorTokenRoundTrip(t *testing.T) {
	token, err := GenerateDoctorToken(7, "doctor@test.com")
	require.NoError(t, err)

	doctorID, err := AuthenticateDoctor(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), doctorID)
}

func TestAdminTokenRoundTrip(t *testing.T) {
	token, err := GenerateAdminToken("admin@test.com")
	require.NoError(t, err)

	email, err := AuthenticateAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@test.com", email)
}

func TestAuthenticateRejectsTampering(t *testing.T) {
	token, err := GeneratePatientToken(42, "patient@test.com")
	require.NoError(t, err)

	_, err = AuthenticatePatient(token + "x")
	assert.Error(t, err)

	_, err = AuthenticatePatient("not-a-token")
	assert.Error(t, err)
}

func TestPatientAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/protected", PatientAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"patientID": c.GetUint("patientID")})
	})

	// Missing header.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User Authorization is missing")

	// Garbage token.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token reaches the handler with the id in context.
	token, err := GeneratePatientToken(42, "patient@test.com")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"patientID":42`)
}
