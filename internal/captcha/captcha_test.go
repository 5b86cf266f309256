package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(secret, verifyURL string) *Client {
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: time.Second},
	}
}

func TestVerifyPassesWhenDisabled(t *testing.T) {
	c := testClient("", "http://127.0.0.1:1")
	ok, err := c.Verify(context.Background(), "anything")
	if err != nil || !ok {
		t.Fatalf("disabled verifier: ok=%v err=%v", ok, err)
	}
}

func TestVerifyRejectsEmptyToken(t *testing.T) {
	c := testClient("secret", "http://127.0.0.1:1")
	ok, err := c.Verify(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("empty token must not verify")
	}
}

func TestVerifyAgainstEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if r.PostFormValue("secret") != "secret" {
			t.Errorf("secret not forwarded")
		}
		if r.PostFormValue("response") == "good-token" {
			w.Write([]byte(`{"success": true}`))
			return
		}
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	c := testClient("secret", srv.URL)

	ok, err := c.Verify(context.Background(), "good-token")
	if err != nil || !ok {
		t.Fatalf("good token: ok=%v err=%v", ok, err)
	}

	ok, err = c.Verify(context.Background(), "bad-token")
	if err != nil {
		t.Fatalf("bad token: %v", err)
	}
	if ok {
		t.Fatal("bad token must not verify")
	}
}

func TestVerifyReportsEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient("secret", srv.URL)
	if _, err := c.Verify(context.Background(), "token"); err == nil {
		t.Fatal("expected an error from a failing endpoint")
	}
}
