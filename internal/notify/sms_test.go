package notify

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *TwilioClient {
	c := NewTwilioClient("AC123", "secret", "+15550009999")
	c.BaseURL = url
	return c
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"To":   r.PostForm.Get("To"),
			"From": r.PostForm.Get("From"),
			"Body": r.PostForm.Get("Body"),
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send("+15550001111", "Your login OTP is: 123456")
	require.NoError(t, err)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "+15550001111", gotForm["To"])
	assert.Equal(t, "+15550009999", gotForm["From"])
	assert.Equal(t, "Your login OTP is: 123456", gotForm["Body"])
}

func TestTwilioSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"authenticate"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Send("+15550001111", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestTwilioUnconfigured(t *testing.T) {
	c := NewTwilioClient("", "", "")
	assert.Error(t, c.Send("+15550001111", "hi"))
}
