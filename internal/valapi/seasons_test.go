package valapi

import (
	"testing"
	"time"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPastActs(t *testing.T) {
	now := ts("2023-06-01T00:00:00Z")

	seasons := []Season{
		{SeasonUUID: "ep1", AssetPath: "/Seasons/Episode1", StartTime: ts("2023-01-01T00:00:00Z")},
		{SeasonUUID: "act1", AssetPath: "/Seasons/Episode1/Act1", StartTime: ts("2023-01-10T00:00:00Z")},
		{SeasonUUID: "act2", AssetPath: "/Seasons/Episode1/Act2", StartTime: ts("2023-03-10T00:00:00Z")},
		{SeasonUUID: "act3", AssetPath: "/Seasons/Episode1/Act3", StartTime: ts("2023-05-10T00:00:00Z")},
		{SeasonUUID: "future", AssetPath: "/Seasons/Episode2/Act1", StartTime: ts("2023-07-10T00:00:00Z")},
	}

	acts := PastActs(seasons, now)

	want := []string{"act3", "act2", "act1"}
	if len(acts) != len(want) {
		t.Fatalf("got %d acts, want %d", len(acts), len(want))
	}
	for i, id := range want {
		if acts[i].SeasonUUID != id {
			t.Errorf("acts[%d] = %s, want %s", i, acts[i].SeasonUUID, id)
		}
	}
}

func TestPastActsTopThree(t *testing.T) {
	now := ts("2023-12-01T00:00:00Z")

	// five past acts with known timestamps; the top 3 must be the 3
	// latest in descending order
	seasons := []Season{
		{SeasonUUID: "a", AssetPath: "Act", StartTime: ts("2023-01-01T00:00:00Z")},
		{SeasonUUID: "b", AssetPath: "Act", StartTime: ts("2023-03-01T00:00:00Z")},
		{SeasonUUID: "c", AssetPath: "Act", StartTime: ts("2023-05-01T00:00:00Z")},
		{SeasonUUID: "d", AssetPath: "Act", StartTime: ts("2023-07-01T00:00:00Z")},
		{SeasonUUID: "e", AssetPath: "Act", StartTime: ts("2023-09-01T00:00:00Z")},
	}

	acts := RecentActs(seasons, now, 3)

	want := []string{"e", "d", "c"}
	if len(acts) != 3 {
		t.Fatalf("got %d acts, want 3", len(acts))
	}
	for i, id := range want {
		if acts[i].SeasonUUID != id {
			t.Errorf("acts[%d] = %s, want %s", i, acts[i].SeasonUUID, id)
		}
	}
}

func TestRecentActsShortList(t *testing.T) {
	now := ts("2023-12-01T00:00:00Z")
	seasons := []Season{
		{SeasonUUID: "only", AssetPath: "Act", StartTime: ts("2023-01-01T00:00:00Z")},
	}

	acts := RecentActs(seasons, now, 4)
	if len(acts) != 1 {
		t.Fatalf("got %d acts, want 1", len(acts))
	}
}

func TestPastActsExcludesBoundary(t *testing.T) {
	now := ts("2023-06-01T00:00:00Z")
	seasons := []Season{
		{SeasonUUID: "exact", AssetPath: "Act", StartTime: now},
	}

	// strictly before now: an act starting exactly now is not past
	if acts := PastActs(seasons, now); len(acts) != 0 {
		t.Errorf("got %d acts, want 0", len(acts))
	}
}
