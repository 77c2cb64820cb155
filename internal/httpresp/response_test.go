package httpresp

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPagingFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{query: "", wantPage: 1, wantLimit: 50, wantOffset: 0},
		{query: "?page=3&limit=20", wantPage: 3, wantLimit: 20, wantOffset: 40},
		{query: "?page=-1&limit=500", wantPage: 1, wantLimit: 50, wantOffset: 0},
		{query: "?page=x&limit=y", wantPage: 1, wantLimit: 50, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/logs"+tt.query, nil)

			p := PagingFrom(c)
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset() != tt.wantOffset {
				t.Fatalf("paging = %+v offset %d", p, p.Offset())
			}
		})
	}
}

func TestPageEmptyData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Page[string](c, Paging{Page: 1, Limit: 50}, 0, nil)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if data, ok := body["data"].([]any); !ok || len(data) != 0 {
		t.Fatalf("data = %#v, want empty array", body["data"])
	}
}
