package dto

import "testing"

func TestPageRequestOffset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{0, 20, 0},
		{1, 20, 20},
		{3, 7, 21},
	}
	for _, tt := range tests {
		got := PageRequest{Page: tt.page, Size: tt.size}.Offset()
		if got != tt.want {
			t.Errorf("Offset(page=%d, size=%d) = %d, want %d", tt.page, tt.size, got, tt.want)
		}
	}
}

func TestNewPageResponseTotals(t *testing.T) {
	// 5 matches, page size 2: three pages, first page is not the last.
	page := PageRequest{Page: 0, Size: 2}
	resp := NewPageResponse([]string{"a", "b"}, page, 5)

	if resp.TotalElements != 5 {
		t.Errorf("TotalElements = %d, want 5", resp.TotalElements)
	}
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
	if resp.Last {
		t.Error("first of three pages must not be last")
	}
	if resp.PageNumber != 0 || resp.PageSize != 2 {
		t.Errorf("page echo mismatch: %d/%d", resp.PageNumber, resp.PageSize)
	}
}

func TestNewPageResponseLastPage(t *testing.T) {
	// Final short page: 5 matches, size 2, page index 2 holds one row.
	resp := NewPageResponse([]string{"e"}, PageRequest{Page: 2, Size: 2}, 5)
	if !resp.Last {
		t.Error("final page must report last=true")
	}
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
}

func TestNewPageResponseEmptyResult(t *testing.T) {
	resp := NewPageResponse[string](nil, PageRequest{Page: 0, Size: 20}, 0)
	if resp.Content == nil {
		t.Fatal("nil content must be normalized to an empty slice")
	}
	if len(resp.Content) != 0 {
		t.Errorf("expected empty content, got %v", resp.Content)
	}
	if resp.TotalPages != 0 {
		t.Errorf("TotalPages = %d, want 0", resp.TotalPages)
	}
	if !resp.Last {
		t.Error("an empty result is its own last page")
	}
}

func TestNewPageResponseExactFit(t *testing.T) {
	// 4 matches, size 2, page 1: exactly two full pages.
	resp := NewPageResponse([]string{"c", "d"}, PageRequest{Page: 1, Size: 2}, 4)
	if resp.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", resp.TotalPages)
	}
	if !resp.Last {
		t.Error("second of two pages must be last")
	}
}
