package lanes

import "testing"

func byID(assignments []Assignment, id string) Assignment {
	for _, a := range assignments {
		if a.ID == id {
			return a
		}
	}
	return Assignment{}
}

func TestAssignLanes_NoOverlapAllLaneZero(t *testing.T) {
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 30},
		{ID: "b", StartMins: 30, EndMins: 60},
	}
	got := AssignLanes(blocks, 3)
	for _, a := range got {
		if a.LaneIndex != 0 {
			t.Errorf("%s: lane = %d, want 0", a.ID, a.LaneIndex)
		}
		if a.Hidden {
			t.Errorf("%s: unexpectedly hidden", a.ID)
		}
	}
}

func TestAssignLanes_OverlapGetsDistinctLanes(t *testing.T) {
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 60},
		{ID: "b", StartMins: 10, EndMins: 40},
		{ID: "c", StartMins: 20, EndMins: 50},
	}
	got := AssignLanes(blocks, 3)
	lanes := map[int]bool{}
	for _, a := range got {
		if lanes[a.LaneIndex] {
			t.Fatalf("lane %d assigned twice among overlapping blocks", a.LaneIndex)
		}
		lanes[a.LaneIndex] = true
	}
	if len(lanes) != 3 {
		t.Fatalf("expected 3 distinct lanes, got %d", len(lanes))
	}
}

func TestAssignLanes_ReusesFreedLane(t *testing.T) {
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 10},
		{ID: "b", StartMins: 0, EndMins: 20},
		{ID: "c", StartMins: 15, EndMins: 30}, // a's lane is free by 15
	}
	got := AssignLanes(blocks, 3)
	if byID(got, "a").LaneIndex != byID(got, "c").LaneIndex {
		t.Errorf("expected c to reuse a's freed lane")
	}
}

func TestAssignLanes_HiddenBeyondCap(t *testing.T) {
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 60},
		{ID: "b", StartMins: 0, EndMins: 60},
		{ID: "c", StartMins: 0, EndMins: 60},
	}
	got := AssignLanes(blocks, 2)
	hiddenCount := 0
	for _, a := range got {
		if a.Hidden {
			hiddenCount++
			if a.LaneIndex < 2 {
				t.Errorf("%s: hidden block should have lane >= maxLanes, got %d", a.ID, a.LaneIndex)
			}
		}
	}
	if hiddenCount != 1 {
		t.Fatalf("expected exactly 1 hidden block, got %d", hiddenCount)
	}
}

func TestAssignLanes_TieBreakLongerDurationFirst(t *testing.T) {
	blocks := []Positioned{
		{ID: "short", StartMins: 0, EndMins: 10},
		{ID: "long", StartMins: 0, EndMins: 50},
	}
	got := AssignLanes(blocks, 3)
	if byID(got, "long").LaneIndex != 0 {
		t.Errorf("expected longer block to claim lane 0 first")
	}
}

func TestClusters_SeparatesNonOverlapping(t *testing.T) {
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 30},
		{ID: "b", StartMins: 30, EndMins: 60},
		{ID: "c", StartMins: 120, EndMins: 150},
	}
	clusters := Clusters(blocks)
	if len(clusters) != 3 {
		t.Fatalf("expected 3 clusters (a and b only touch), got %d: %+v", len(clusters), clusters)
	}
	if len(clusters[0]) != 1 || clusters[0][0].ID != "a" {
		t.Errorf("expected first cluster to contain only a, got %+v", clusters[0])
	}
	if len(clusters[1]) != 1 || clusters[1][0].ID != "b" {
		t.Errorf("expected second cluster to contain only b, got %+v", clusters[1])
	}
	if len(clusters[2]) != 1 || clusters[2][0].ID != "c" {
		t.Errorf("expected third cluster to contain only c, got %+v", clusters[2])
	}
}

func TestClusters_TransitiveOverlapMergesChain(t *testing.T) {
	// a overlaps b, b overlaps c, but a and c don't directly overlap.
	blocks := []Positioned{
		{ID: "a", StartMins: 0, EndMins: 20},
		{ID: "b", StartMins: 10, EndMins: 30},
		{ID: "c", StartMins: 25, EndMins: 40},
	}
	clusters := Clusters(blocks)
	if len(clusters) != 1 {
		t.Fatalf("expected a single merged cluster, got %d: %+v", len(clusters), clusters)
	}
	if len(clusters[0]) != 3 {
		t.Errorf("expected all 3 blocks in the cluster, got %+v", clusters[0])
	}
}

func TestClusters_EmptyInput(t *testing.T) {
	if got := Clusters(nil); len(got) != 0 {
		t.Errorf("expected no clusters for empty input, got %+v", got)
	}
}
