//go:build integration

package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
)

var placeholderPattern = regexp.MustCompile(`\{\{([a-z_]+)(?::([^}]+))?\}\}`)

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) theCronSecretHeaderIsSet() error {
	t.headers[middleware.CronSecretHeader] = testCronSecret
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, t.replacePlaceholders(path), []byte(t.replacePlaceholders(body.Content)))
}

// replacePlaceholders expands {{user_id}}, {{last_id}} and {{category:Name}}.
func (t *testContext) replacePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := placeholderPattern.FindStringSubmatch(match)
		switch parts[1] {
		case "user_id":
			return t.currentUserID.String()
		case "last_id":
			return t.lastID
		case "category":
			if id, ok := t.categories[parts[2]]; ok {
				return id.String()
			}
		}
		return match
	})
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.response = &response{status: resp.StatusCode, raw: raw}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &t.response.body)
	}
	if id, ok := getFieldValue(t.response.body, "id").(string); ok {
		t.lastID = id
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	var js json.RawMessage
	if err := json.Unmarshal(t.response.raw, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(expected string) error {
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(t.response.raw))
	}

	actual := fmt.Sprintf("%v", value)
	expected := t.replacePlaceholders(expectedValue)
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response. Body: %s", field, string(t.response.raw))
	}
	return nil
}

func (t *testContext) theResponseListShouldHaveItems(field string, count int) error {
	list, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		if count == 0 && getFieldValue(t.response.body, field) == nil {
			return nil
		}
		return fmt.Errorf("field '%s' is not a list. Body: %s", field, string(t.response.raw))
	}
	if len(list) != count {
		return fmt.Errorf("expected %d items in '%s', got %d", count, field, len(list))
	}
	return nil
}

// getFieldValue resolves a dot separated path such as "buckets.0.amount".
func getFieldValue(object any, dotSeparatedField string) any {
	var field = object
	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		switch v := field.(type) {
		case map[string]any:
			field = v[currentField]
		case []any:
			i, err := strconv.Atoi(currentField)
			if err != nil || i >= len(v) {
				return nil
			}
			field = v[i]
		default:
			return nil
		}
	}
	return field
}
