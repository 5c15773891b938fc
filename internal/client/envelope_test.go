package client

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"alchemist/internal/types"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Run("success true unwraps data", func(t *testing.T) {
		var out map[string]string
		err := decodeEnvelope([]byte(`{"success":true,"data":{"name":"Acme"}}`), &out)
		if err != nil {
			t.Fatalf("decodeEnvelope failed: %v", err)
		}
		if out["name"] != "Acme" {
			t.Errorf("expected Acme, got %q", out["name"])
		}
	})

	t.Run("success false returns APIError with message", func(t *testing.T) {
		err := decodeEnvelope([]byte(`{"success":false,"message":"row 3 invalid"}`), nil)
		ae, ok := err.(*APIError)
		if !ok {
			t.Fatalf("expected *APIError, got %T", err)
		}
		if ae.Message != "row 3 invalid" {
			t.Errorf("unexpected message: %q", ae.Message)
		}
	})

	t.Run("success false prefers message over error field", func(t *testing.T) {
		err := decodeEnvelope([]byte(`{"success":false,"message":"msg","error":"err"}`), nil)
		if ae := err.(*APIError); ae.Message != "msg" {
			t.Errorf("expected message field preferred, got %q", ae.Message)
		}
	})

	t.Run("success false falls back to error field", func(t *testing.T) {
		err := decodeEnvelope([]byte(`{"success":false,"error":"boom"}`), nil)
		if ae := err.(*APIError); ae.Message != "boom" {
			t.Errorf("expected error field, got %q", ae.Message)
		}
	})

	t.Run("no success field but data present unwraps data", func(t *testing.T) {
		var out []int
		err := decodeEnvelope([]byte(`{"data":[1,2,3]}`), &out)
		if err != nil {
			t.Fatalf("decodeEnvelope failed: %v", err)
		}
		if len(out) != 3 {
			t.Errorf("expected 3 items, got %d", len(out))
		}
	})

	t.Run("no envelope at all decodes raw payload", func(t *testing.T) {
		var out types.HealthStatus
		err := decodeEnvelope([]byte(`{"status":"ok","service":"api"}`), &out)
		if err != nil {
			t.Fatalf("decodeEnvelope failed: %v", err)
		}
		if out.Status != "ok" {
			t.Errorf("expected ok, got %q", out.Status)
		}
	})

	t.Run("success true without data decodes raw payload for sibling fields", func(t *testing.T) {
		var out struct {
			Recommendations []string `json:"recommendations"`
		}
		err := decodeEnvelope([]byte(`{"success":true,"recommendations":["a","b"]}`), &out)
		if err != nil {
			t.Fatalf("decodeEnvelope failed: %v", err)
		}
		if len(out.Recommendations) != 2 {
			t.Errorf("expected 2 recommendations, got %d", len(out.Recommendations))
		}
	})
}

func TestDecodePage_WrappedPagination(t *testing.T) {
	body := []byte(`{
		"success": true,
		"data": [{"id":1},{"id":2}],
		"pagination": {"page":3,"limit":2,"total":11,"totalPages":6,"hasNext":true,"hasPrev":true}
	}`)

	page, err := decodePage[types.Record](body, 2)
	if err != nil {
		t.Fatalf("decodePage failed: %v", err)
	}

	want := &PageResult[types.Record]{
		Items:      []types.Record{{"id": float64(1)}, {"id": float64(2)}},
		Total:      11,
		Page:       3,
		Limit:      2,
		TotalPages: 6,
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePage_BareArraySynthesizesSinglePage(t *testing.T) {
	body := []byte(`[{"id":1},{"id":2},{"id":3}]`)

	page, err := decodePage[types.Record](body, 25)
	if err != nil {
		t.Fatalf("decodePage failed: %v", err)
	}

	if page.Total != 3 {
		t.Errorf("expected total 3 (array length), got %d", page.Total)
	}
	if page.Page != 1 || page.TotalPages != 1 {
		t.Errorf("expected single synthesized page, got page=%d totalPages=%d", page.Page, page.TotalPages)
	}
	if page.Limit != 25 {
		t.Errorf("expected caller limit preserved, got %d", page.Limit)
	}
	if len(page.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(page.Items))
	}
}

func TestDecodePage_WrappedWithoutPagination(t *testing.T) {
	body := []byte(`{"success":true,"data":[{"id":9}]}`)

	page, err := decodePage[types.Record](body, 10)
	if err != nil {
		t.Fatalf("decodePage failed: %v", err)
	}
	if page.Total != 1 || page.Page != 1 || page.TotalPages != 1 {
		t.Errorf("expected synthesized page, got %+v", page)
	}
}

func TestDecodePage_SuccessFalse(t *testing.T) {
	_, err := decodePage[types.Record]([]byte(`{"success":false,"message":"nope"}`), 10)
	ae, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if ae.Message != "nope" {
		t.Errorf("unexpected message: %q", ae.Message)
	}
}

func TestDecodePage_TypedItems(t *testing.T) {
	body := []byte(`{"success":true,"data":[{"id":4,"name":"Dana","skills":["go","sql"],"availability":"busy"}]}`)

	page, err := decodePage[types.Worker](body, 10)
	if err != nil {
		t.Fatalf("decodePage failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("expected 1 worker, got %d", len(page.Items))
	}
	w := page.Items[0]
	if w.Name != "Dana" || w.Availability != types.AvailabilityBusy || len(w.Skills) != 2 {
		t.Errorf("worker decoded wrong: %+v", w)
	}
}
