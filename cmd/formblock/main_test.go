package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formblock/pkg/render"
	"github.com/goliatone/go-formblock/pkg/submission"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type backend struct {
	mu     sync.Mutex
	status int
	bodies []string
}

func newBackend(t *testing.T, status int) (*backend, *httptest.Server) {
	t.Helper()
	b := &backend{status: status}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.bodies = append(b.bodies, string(body))
		b.mu.Unlock()
		w.WriteHeader(b.status)
	}))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) sent() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.bodies...)
}

func TestRender_HTML(t *testing.T) {
	stdout, _, err := run(t, "render", "--block", "contact-form")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<input type="hidden" name="form-name" value="contact-form">`)
}

func TestRender_Text(t *testing.T) {
	stdout, _, err := run(t, "render", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Form contact-form")
	assert.Contains(t, stdout, "[ Send message ]")
}

func TestRender_UnknownBlock(t *testing.T) {
	_, _, err := run(t, "render", "--block", "newsletter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `block "newsletter" not found`)
}

func TestRender_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "render", "--format", "pdf")
	require.Error(t, err)
}

func TestRender_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.html")
	stdout, _, err := run(t, "render", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="contact-form"`)
}

func TestRender_ThemeFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formblock.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "error"

[theme]
name = "acme"

[theme.tokens]
brand = "#123456"
`), 0o644))

	stdout, _, err := run(t, "--config", path, "render")
	require.NoError(t, err)
	assert.Contains(t, stdout, `style="--brand: #123456;"`)
}

func TestRender_ContentDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "newsletter.json"), []byte(`{
  "elementId": "newsletter",
  "fields": [
    {"__metadata": {"modelName": "EmailFormControl"}, "name": "email", "label": "Email"}
  ]
}`), 0o644))

	stdout, _, err := run(t, "render", "--content", dir, "--block", "newsletter")
	require.NoError(t, err)
	assert.Contains(t, stdout, `type="email"`)
	assert.NotContains(t, stdout, `data-status`)
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestSubmit_Success(t *testing.T) {
	b, srv := newBackend(t, http.StatusOK)

	stdout, _, err := run(t, "submit", "--endpoint", srv.URL,
		"--set", "name=Ada", "--set", "email=ada@example.com", "--set", "updates=on")
	require.NoError(t, err)
	assert.Contains(t, stdout, render.DefaultMessages().Submitted)

	sent := b.sent()
	require.Len(t, sent, 1)
	assert.Equal(t,
		"form-name=contact-form&bot-field=&name=Ada&email=ada%40example.com&topic=&message=&updates=on",
		sent[0])
}

func TestSubmit_FailureExitsWithError(t *testing.T) {
	_, srv := newBackend(t, http.StatusInternalServerError)

	stdout, _, err := run(t, "--log-level", "error", "submit", "--endpoint", srv.URL, "--set", "name=Ada")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errSubmitFailed))
	assert.Contains(t, stdout, submission.GenericErrorMessage)
}

func TestSubmit_RequiresEndpoint(t *testing.T) {
	_, _, err := run(t, "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--endpoint")
}

func TestSubmit_UnknownControl(t *testing.T) {
	b, srv := newBackend(t, http.StatusOK)

	_, _, err := run(t, "submit", "--endpoint", srv.URL, "--set", "phone=123")
	require.Error(t, err)
	assert.ErrorIs(t, err, submission.ErrUnknownControl)
	assert.Empty(t, b.sent())
}

func TestApplySets_RepeatedNames(t *testing.T) {
	form := submission.NewValues(submission.Control{Name: "tags", Multiple: true})
	require.NoError(t, applySets(form, []string{"tags=a", "tags=b"}))
	assert.Equal(t, []submission.Entry{{Name: "tags", Value: "a"}, {Name: "tags", Value: "b"}}, form.Entries())

	assert.Error(t, applySets(form, []string{"tags"}))
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "formblock dev (none)")
}

func TestLint(t *testing.T) {
	stdout, _, err := run(t, "lint")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte(`
elementId: broken
fields:
  - __metadata:
      modelName: RatingFormControl
    name: stars
`), 0o644))

	stdout, _, err = run(t, "lint", "--content", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, errLintFailed)
	assert.Contains(t, stdout, "broken.yaml: error: fields.0 (stars) -> no component matching the form field model name: RatingFormControl")
	assert.Contains(t, stdout, "warning: submitButton")
}
