package main

import (
	"net/http"
	url2 "net/url"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_application_home(t *testing.T) {
	aiServer := newStubAIServer(t)
	server := startTestServer(t, os.Stdout, newTestLookupEnv(aiServer.URL+"/v1"))

	doc := server.GetDoc(t, "/")
	require.Equal(t, 1, doc.Find("a[href='/user/login']").Length())
	require.Equal(t, 1, doc.Find("a[href='/user/signup']").Length())

	// Signing up logs the user in.
	doc = server.Signup(t, "Ada", "ada@example.com", "correct horse battery")
	require.Equal(t, 1, doc.Find("button:contains('Log out')").Length())
	require.Equal(t, 1, doc.Find("form[action='/interview/start']").Length())

	// Log out and back in.
	doc = server.SubmitForm(t, doc, "/user/logout", nil)
	require.Equal(t, 1, doc.Find("a[href='/user/login']").Length())

	doc = server.GetDoc(t, "/user/login")
	doc = server.SubmitForm(t, doc, "/user/login", url2.Values{
		"email":    {"ada@example.com"},
		"password": {"correct horse battery"},
	})
	require.Equal(t, 1, doc.Find("button:contains('Log out')").Length())
}

func Test_application_home_loginRejectsBadCredentials(t *testing.T) {
	aiServer := newStubAIServer(t)
	server := startTestServer(t, os.Stdout, newTestLookupEnv(aiServer.URL+"/v1"))

	server.Signup(t, "Ada", "ada@example.com", "correct horse battery")

	doc := server.GetDoc(t, "/user/login")
	doc = server.SubmitForm(t, doc, "/user/login", url2.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong password"},
	})
	require.Equal(t, 1, doc.Find("p[role='alert']:contains('Email or password is incorrect.')").Length())
}

func Test_application_home_duplicateEmail(t *testing.T) {
	aiServer := newStubAIServer(t)
	server := startTestServer(t, os.Stdout, newTestLookupEnv(aiServer.URL+"/v1"))

	server.Signup(t, "Ada", "ada@example.com", "correct horse battery")
	doc := server.SubmitForm(t, server.GetDoc(t, "/user/signup"), "/user/signup", url2.Values{
		"name":     {"Imposter"},
		"email":    {"ada@example.com"},
		"password": {"another password"},
	})
	require.Equal(t, 1, doc.Find("p[role='alert']:contains('already registered')").Length())
}

func Test_application_protectedRoutesRedirectAnonymousUsers(t *testing.T) {
	aiServer := newStubAIServer(t)
	server := startTestServer(t, os.Stdout, newTestLookupEnv(aiServer.URL+"/v1"))

	resp, err := server.client.Get(server.url + "/interview")
	require.NoError(t, err)
	defer func() {
		require.NoError(t, resp.Body.Close())
	}()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/user/login", resp.Request.URL.Path)
}
