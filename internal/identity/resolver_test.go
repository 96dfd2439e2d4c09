package identity_test

import (
	"testing"

	"gradetl/internal/identity"
	"gradetl/internal/records"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		raw    records.Raw
		wantID int64
		wantOK bool
	}{
		{"url segment", records.Raw{URL: "https://www.thegradcafe.com/result/12345"}, 12345, true},
		{"url with trailing path", records.Raw{URL: "https://host/result/12345/edit"}, 12345, true},
		{"first url match wins", records.Raw{URL: "/result/111 and /result/222"}, 111, true},
		{"explicit id fallback", records.Raw{ExplicitID: "67890"}, 67890, true},
		{"explicit id with whitespace", records.Raw{ExplicitID: " 67890 "}, 67890, true},
		{"url beats explicit id", records.Raw{URL: "/result/12345", ExplicitID: "67890"}, 12345, true},
		{"unparseable url falls back to explicit id", records.Raw{URL: "https://host/about", ExplicitID: "42"}, 42, true},
		{"non numeric explicit id", records.Raw{ExplicitID: "abc123"}, 0, false},
		{"zero explicit id rejected", records.Raw{ExplicitID: "0"}, 0, false},
		{"negative explicit id rejected", records.Raw{ExplicitID: "-5"}, 0, false},
		{"no identity", records.Raw{University: "MIT"}, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := identity.Resolve(tc.raw)
			if ok != tc.wantOK || id != tc.wantID {
				t.Fatalf("Resolve: expected (%d, %v), got (%d, %v)", tc.wantID, tc.wantOK, id, ok)
			}
		})
	}
}
