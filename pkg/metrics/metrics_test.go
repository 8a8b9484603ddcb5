package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAssociationChanges(t *testing.T) {
	add := AssociationChanges.WithLabelValues(AssociationLike, "add")
	remove := AssociationChanges.WithLabelValues(AssociationLike, "remove")
	update := AssociationChanges.WithLabelValues(AssociationLike, "update")

	beforeAdd := testutil.ToFloat64(add)
	beforeRemove := testutil.ToFloat64(remove)
	beforeUpdate := testutil.ToFloat64(update)

	RecordAssociationChanges(AssociationLike, 3, 0, 1)

	if got := testutil.ToFloat64(add) - beforeAdd; got != 3 {
		t.Errorf("add delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(remove) - beforeRemove; got != 1 {
		t.Errorf("remove delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(update) - beforeUpdate; got != 0 {
		t.Errorf("update delta = %v, want 0", got)
	}
}
