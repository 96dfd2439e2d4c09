package diff_test

import (
	"testing"

	"gradetl/internal/diff"
	"gradetl/internal/records"
)

func TestPartition(t *testing.T) {
	known := map[int64]struct{}{
		100: {},
		200: {},
	}
	raws := []records.Raw{
		{URL: "/result/100", University: "A"},
		{URL: "/result/300", University: "B"},
		{ExplicitID: "200", University: "C"},
		{University: "D"}, // no identity
	}

	seen, fresh := diff.Partition(raws, known)

	if len(seen) != 2 {
		t.Fatalf("expected 2 seen records, got %d", len(seen))
	}
	if seen[0].University != "A" || seen[1].University != "C" {
		t.Fatalf("unexpected seen partition: %+v", seen)
	}
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh records, got %d", len(fresh))
	}
	if fresh[0].University != "B" || fresh[1].University != "D" {
		t.Fatalf("unexpected fresh partition: %+v", fresh)
	}
}

func TestPartitionEmptyInputs(t *testing.T) {
	seen, fresh := diff.Partition(nil, map[int64]struct{}{1: {}})
	if len(seen) != 0 || len(fresh) != 0 {
		t.Fatalf("expected empty partitions, got seen=%d fresh=%d", len(seen), len(fresh))
	}

	raws := []records.Raw{{URL: "/result/1"}}
	seen, fresh = diff.Partition(raws, nil)
	if len(seen) != 0 || len(fresh) != 1 {
		t.Fatalf("with no known identities everything is fresh, got seen=%d fresh=%d", len(seen), len(fresh))
	}
}
