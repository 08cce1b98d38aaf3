package rank

import (
	"reflect"
	"testing"

	"pulse-digest/internal/model"
)

func scored(id string, final float64) model.ScoredItem {
	return model.ScoredItem{Item: model.TextItem{ID: id}, FinalScore: final}
}

func TestRerankScoredDescending(t *testing.T) {
	in := []model.ScoredItem{scored("a", 120), scored("b", 300), scored("c", 50)}
	got := ScoredIDs(RerankScored(in))
	want := []string{"b", "a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRerankScoredStableTies(t *testing.T) {
	in := []model.ScoredItem{scored("a", 100), scored("b", 100), scored("c", 100)}
	got := ScoredIDs(RerankScored(in))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ties must keep input order, got %v", got)
	}
}

func TestRerankScoredIdempotent(t *testing.T) {
	in := []model.ScoredItem{scored("a", 80), scored("b", 200), scored("c", 80)}
	once := RerankScored(in)
	twice := RerankScored(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("rerank of its own output changed the order: %v vs %v", ScoredIDs(once), ScoredIDs(twice))
	}
}

func TestRerankScoredDoesNotModifyInput(t *testing.T) {
	in := []model.ScoredItem{scored("a", 10), scored("b", 20)}
	RerankScored(in)
	if in[0].Item.ID != "a" || in[1].Item.ID != "b" {
		t.Errorf("input slice was reordered: %v", ScoredIDs(in))
	}
}

func TestRerankTopics(t *testing.T) {
	in := []model.Topic{
		{ID: "t1", SocialImpactScore: 12.5},
		{ID: "t2", SocialImpactScore: 980.4},
		{ID: "t3", SocialImpactScore: 0},
	}
	got := RerankTopics(in)
	if got[0].ID != "t2" || got[1].ID != "t1" || got[2].ID != "t3" {
		t.Errorf("unexpected topic order: %v, %v, %v", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestDelta(t *testing.T) {
	before := []string{"a", "b", "c"}
	after := []string{"c", "a", "b"}

	if d, ok := Delta(before, after, "c"); !ok || d != 2 {
		t.Errorf("c moved up two places, got %d ok=%v", d, ok)
	}
	if d, ok := Delta(before, after, "a"); !ok || d != -1 {
		t.Errorf("a moved down one place, got %d ok=%v", d, ok)
	}
	if _, ok := Delta(before, after, "missing"); ok {
		t.Error("unknown id must report ok=false")
	}
}
