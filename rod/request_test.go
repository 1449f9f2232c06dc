package rod

import (
	"testing"

	"github.com/fwojciec/mangasrc"
	"github.com/stretchr/testify/assert"
)

func TestCheckRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  *mangasrc.Request
		code string
	}{
		{"get", &mangasrc.Request{URL: "https://example.com", Method: "GET"}, ""},
		{"default method", &mangasrc.Request{URL: "https://example.com"}, ""},
		{"nil", nil, mangasrc.EINVALID},
		{"no url", &mangasrc.Request{Method: "GET"}, mangasrc.EINVALID},
		{"post", &mangasrc.Request{URL: "https://example.com", Method: "POST"}, mangasrc.EINVALID},
		{"body", &mangasrc.Request{URL: "https://example.com", Body: "q=x"}, mangasrc.EINVALID},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := checkRequest(tc.req)

			assert.Equal(t, tc.code, mangasrc.ErrorCode(err))
		})
	}
}
