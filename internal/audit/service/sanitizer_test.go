package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeDetails(t *testing.T) {
	t.Run("RedactsMessageBodies", func(t *testing.T) {
		out := SanitizeDetails(map[string]any{
			"message":       "my ssn is 078-05-1120",
			"finding_count": 2,
		})

		assert.Equal(t, "[REDACTED]", out["message"])
		assert.Equal(t, 2, out["finding_count"])
	})

	t.Run("RedactsCredentialKeys", func(t *testing.T) {
		out := SanitizeDetails(map[string]any{
			"api_key":       "sk-ant-xxx",
			"Authorization": "Bearer abc",
			"refresh-token": "tok",
			"user_password": "hunter2",
			"clientSecret":  "shh",
			"provider":      "anthropic",
		})

		for _, key := range []string{"api_key", "Authorization", "refresh-token", "user_password", "clientSecret"} {
			assert.Equal(t, "[REDACTED]", out[key], "key %q should be redacted", key)
		}
		assert.Equal(t, "anthropic", out["provider"])
	})

	t.Run("WalksNestedMapsAndSlices", func(t *testing.T) {
		out := SanitizeDetails(map[string]any{
			"request": map[string]any{
				"model": "some-model",
				"body":  "raw prompt text",
			},
			"attempts": []any{
				map[string]any{"token": "abc", "status": 429},
			},
		})

		request := out["request"].(map[string]any)
		assert.Equal(t, "some-model", request["model"])
		assert.Equal(t, "[REDACTED]", request["body"])

		attempt := out["attempts"].([]any)[0].(map[string]any)
		assert.Equal(t, "[REDACTED]", attempt["token"])
		assert.Equal(t, 429, attempt["status"])
	})

	t.Run("DoesNotMutateTheInput", func(t *testing.T) {
		in := map[string]any{"password": "hunter2"}
		_ = SanitizeDetails(in)
		assert.Equal(t, "hunter2", in["password"])
	})

	t.Run("NilDetailsStayNil", func(t *testing.T) {
		assert.Nil(t, SanitizeDetails(nil))
	})
}
