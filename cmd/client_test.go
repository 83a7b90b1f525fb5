package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

//
// client context tests
//

func TestLogResponsePreservesVerbs(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	c := testClient()

	// engine error messages embed urls and engine-supplied text; literal
	// percent sequences must survive logging untouched
	c.logResponse(searchResponse{
		status: 502,
		err:    fmt.Errorf("failed response from GET http://engine/search?q=100%%20whales"),
	})

	out := buf.String()

	if strings.Contains(out, "MISSING") == true || strings.Contains(out, "%!") == true {
		t.Fatalf("Expected literal percent preserved, got [%s]\n", out)
	}

	if strings.Contains(out, "q=100%20whales") == false {
		t.Fatalf("Expected error message logged verbatim, got [%s]\n", out)
	}
}

func TestIsAuthenticated(t *testing.T) {
	c := testClient()

	if c.isAuthenticated() == true {
		t.Fatalf("Expected anonymous client without claims\n")
	}

	c.claims = jwt.MapClaims{"sub": "portal-user"}

	if c.isAuthenticated() == false {
		t.Fatalf("Expected authenticated client with claims\n")
	}
}
