package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any, withToken bool) (int, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		s.Require().NoError(err)
		reqBody = bytes.NewBuffer(bodyJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, fmt.Sprintf("%s%s", serverEndpoint, path), reqBody)
	s.Require().NoError(err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		req.Header.Set("X-HEALTHSTATS-TOKEN", testClientSecret)
	}

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.Logf("close response body: %s", err)
		}
	}()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBytes
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}
