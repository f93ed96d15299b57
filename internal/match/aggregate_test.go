package match

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"haunt/internal/local"
	"haunt/internal/pvp"
	"haunt/internal/valapi"
)

// fakeSource serves canned responses in place of the remote API.
type fakeSource struct {
	data       *pvp.MatchData
	dataErr    error
	names      map[string]string
	namesErr   error
	history    map[string][]pvp.ActRank
	historyErr map[string]error
}

func (f *fakeSource) MatchData(local.SessionInfo, local.Entitlements, string) (*pvp.MatchData, error) {
	if f.dataErr != nil {
		return nil, f.dataErr
	}
	// hand out a copy so party-id merging can't leak between calls
	data := *f.data
	data.Players = append([]pvp.Player(nil), f.data.Players...)
	return &data, nil
}

func (f *fakeSource) PlayerNames(_ local.SessionInfo, _ local.Entitlements, puuids []string) (map[string]string, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	return f.names, nil
}

func (f *fakeSource) PlayerHistory(_ local.SessionInfo, _ local.Entitlements, puuid string, _ []valapi.Season) ([]pvp.ActRank, error) {
	if err := f.historyErr[puuid]; err != nil {
		return nil, err
	}
	return f.history[puuid], nil
}

type fakeAgents map[string]valapi.Agent

func (f fakeAgents) Get(uuid string) (valapi.Agent, bool) {
	agent, ok := f[uuid]
	return agent, ok
}

type fakeTiers map[string]map[int]valapi.Rank

func (f fakeTiers) Resolve(episodeID string, tier int) (valapi.Rank, bool) {
	ranks, ok := f[episodeID]
	if !ok {
		return valapi.Rank{}, false
	}
	rank, ok := ranks[tier]
	return rank, ok
}

func testAggregator(source *fakeSource) *Aggregator {
	return &Aggregator{
		Source: source,
		Agents: fakeAgents{
			"jett-id": {UUID: "jett-id", DisplayName: "Jett", DisplayIcon: "jett.png"},
			"sage-id": {UUID: "sage-id", DisplayName: "Sage", DisplayIcon: "sage.png"},
		},
		Tiers: fakeTiers{
			"ep7-tiers": {21: {Name: "DIAMOND 1", LargeIcon: "d1.png"}},
		},
	}
}

var (
	aggSession      = local.SessionInfo{PUUID: "self", Region: "na", Shard: "na"}
	aggEntitlements = local.Entitlements{AccessToken: "a", JWT: "j"}
	aggActs         = []valapi.Season{{SeasonUUID: "act-1", CompetitiveTiersUUID: "ep7-tiers"}}
)

func TestAggregate(t *testing.T) {
	source := &fakeSource{
		data: &pvp.MatchData{
			InGame: true,
			Map:    "/Game/Maps/Ascent/Ascent",
			Mode:   "competitive",
			Players: []pvp.Player{
				{PUUID: "p1", Team: "Blue", Character: pvp.Character{Kind: pvp.CharacterLocked, ID: "jett-id"}, AccountLevel: 88},
				{PUUID: "p2", Team: "Red", Character: pvp.Character{Kind: pvp.CharacterNone}, AccountLevel: 12},
			},
		},
		names: map[string]string{"p1": "Alice #NA1", "p2": "Bob #NA1"},
		history: map[string][]pvp.ActRank{
			"p1": {{SeasonID: "act-1", EpisodeID: "ep7-tiers", Tier: 21}},
		},
	}

	presences := []local.Player{
		{PUUID: "p1", Private: local.PrivatePresence{PartyID: "party-x"}},
	}

	projection, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", presences, aggActs)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if !projection.InGame || projection.Map != "/Game/Maps/Ascent/Ascent" {
		t.Errorf("projection header: %+v", projection)
	}
	if len(projection.Players) != 2 {
		t.Fatalf("got %d players, want 2", len(projection.Players))
	}

	p1 := projection.Players[0]
	if p1.Name != "Alice #NA1" {
		t.Errorf("p1.Name = %q", p1.Name)
	}
	if p1.Character == nil || p1.Character.DisplayName != "Jett" {
		t.Errorf("p1.Character = %+v", p1.Character)
	}
	if p1.PartyID != "party-x" {
		t.Errorf("p1.PartyID = %q, want party-x (merged from presence)", p1.PartyID)
	}
	if p1.AccountLevel == nil || *p1.AccountLevel != 88 {
		t.Errorf("p1.AccountLevel = %v", p1.AccountLevel)
	}
	if len(p1.RankHistory) != 1 || p1.RankHistory[0].TierName != "DIAMOND 1" {
		t.Errorf("p1.RankHistory = %+v", p1.RankHistory)
	}

	p2 := projection.Players[1]
	if p2.Character != nil {
		t.Errorf("p2.Character = %+v, want none", p2.Character)
	}
	if p2.PartyID != "" {
		t.Errorf("p2.PartyID = %q, want empty (no presence, non-fatal)", p2.PartyID)
	}
	if len(p2.RankHistory) != 0 {
		t.Errorf("p2.RankHistory = %+v, want empty", p2.RankHistory)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	source := &fakeSource{
		data: &pvp.MatchData{
			InGame: true,
			Map:    "m",
			Mode:   "competitive",
			Players: []pvp.Player{
				{PUUID: "p1", Team: "Blue", Character: pvp.Character{Kind: pvp.CharacterLocked, ID: "jett-id"}},
				{PUUID: "p2", Team: "Red"},
			},
		},
		names: map[string]string{"p1": "Alice #NA1", "p2": "Bob #NA1"},
		history: map[string][]pvp.ActRank{
			"p1": {{SeasonID: "act-1", EpisodeID: "ep7-tiers", Tier: 21}},
		},
	}
	aggregator := testAggregator(source)

	first, err := aggregator.Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if err != nil {
		t.Fatal(err)
	}
	second, err := aggregator.Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("same inputs produced different projections:\n%s\n%s", a, b)
	}
}

func TestAggregateNameFailureIsFatal(t *testing.T) {
	source := &fakeSource{
		data:     &pvp.MatchData{Players: []pvp.Player{{PUUID: "p1"}}},
		namesErr: fmt.Errorf("name service down"),
	}

	_, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if !errors.Is(err, ErrNameResolution) {
		t.Fatalf("err = %v, want ErrNameResolution", err)
	}
}

func TestAggregateMatchDataFailure(t *testing.T) {
	source := &fakeSource{dataErr: fmt.Errorf("both endpoints failed")}

	_, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if !errors.Is(err, ErrMatchData) {
		t.Fatalf("err = %v, want ErrMatchData", err)
	}
}

func TestAggregateHistoryFailureIsPerPlayer(t *testing.T) {
	source := &fakeSource{
		data: &pvp.MatchData{Players: []pvp.Player{
			{PUUID: "p1"}, {PUUID: "p2"}, {PUUID: "p3"},
		}},
		names: map[string]string{"p1": "A #1", "p2": "B #1", "p3": "C #1"},
		history: map[string][]pvp.ActRank{
			"p1": {{SeasonID: "act-1", EpisodeID: "ep7-tiers", Tier: 21}},
			"p3": {{SeasonID: "act-1", EpisodeID: "ep7-tiers", Tier: 21}},
		},
		historyErr: map[string]error{"p2": fmt.Errorf("mmr timeout")},
	}

	projection, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if err != nil {
		t.Fatalf("one player's mmr failure must not fail the match: %v", err)
	}

	if len(projection.Players[0].RankHistory) != 1 {
		t.Errorf("p1 history = %+v, want 1 entry", projection.Players[0].RankHistory)
	}
	if len(projection.Players[1].RankHistory) != 0 {
		t.Errorf("p2 history = %+v, want empty", projection.Players[1].RankHistory)
	}
	if len(projection.Players[2].RankHistory) != 1 {
		t.Errorf("p3 history = %+v, want 1 entry", projection.Players[2].RankHistory)
	}
}

func TestVisibleName(t *testing.T) {
	jett := &valapi.Agent{DisplayName: "Jett"}

	tests := []struct {
		name      string
		incognito bool
		character *valapi.Agent
		want      string
	}{
		{"shown when not incognito", false, jett, "Alice #NA1"},
		{"agent name when incognito", true, jett, "Jett"},
		{"placeholder when incognito without agent", true, nil, "Player"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visibleName("Alice #NA1", tt.incognito, tt.character); got != tt.want {
				t.Errorf("visibleName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAggregateHidesAccountLevel(t *testing.T) {
	source := &fakeSource{
		data: &pvp.MatchData{Players: []pvp.Player{
			{PUUID: "p1", AccountLevel: 300, HideAccountLevel: true},
			{PUUID: "p2", AccountLevel: 45},
		}},
		names: map[string]string{"p1": "A #1", "p2": "B #1"},
	}

	projection, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if err != nil {
		t.Fatal(err)
	}

	hidden := projection.Players[0]
	if hidden.AccountLevel != nil {
		t.Errorf("hidden AccountLevel = %v, want nil", *hidden.AccountLevel)
	}
	raw, _ := json.Marshal(hidden)
	if jsonHasKey(raw, "accountLevel") {
		t.Errorf("accountLevel serialized for a hiding player: %s", raw)
	}

	shown := projection.Players[1]
	if shown.AccountLevel == nil || *shown.AccountLevel != 45 {
		t.Errorf("shown AccountLevel = %v, want 45", shown.AccountLevel)
	}
}

func TestAggregateUnknownTier(t *testing.T) {
	source := &fakeSource{
		data:  &pvp.MatchData{Players: []pvp.Player{{PUUID: "p1"}}},
		names: map[string]string{"p1": "A #1"},
		history: map[string][]pvp.ActRank{
			"p1": {{SeasonID: "act-1", EpisodeID: "unknown-episode", Tier: 5}},
		},
	}

	projection, err := testAggregator(source).Aggregate(aggSession, aggEntitlements, "m", nil, aggActs)
	if err != nil {
		t.Fatal(err)
	}

	history := projection.Players[0].RankHistory
	if len(history) != 1 {
		t.Fatalf("history = %+v, want 1 entry", history)
	}
	if history[0].TierName != unrankedName {
		t.Errorf("TierName = %q, want %q", history[0].TierName, unrankedName)
	}
}

func jsonHasKey(raw []byte, key string) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, ok := obj[key]
	return ok
}
