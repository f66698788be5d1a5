package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
)

func TestTemplatesRender(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, LoginPage, map[string]interface{}{"Title": "Login", "Error": "invalid email or password", "Email": "a@example.com"}))
	assert.Contains(t, buf.String(), "invalid email or password")
	assert.NotContains(t, buf.String(), `name="password" value`)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, RegisterPage, map[string]interface{}{
		"Title": "Register",
		"Form":  dto.RegisterRequest{Role: "VALUATOR"},
		"Roles": models.Roles(),
	}))
	assert.Contains(t, buf.String(), `<option value="VALUATOR" selected>Valuator</option>`)

	buf.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&buf, CreateExamPage, map[string]interface{}{"Title": "Create Exam", "Form": dto.CreateExamRequest{}}))
	assert.Contains(t, buf.String(), `name="total_seats"`)
}
