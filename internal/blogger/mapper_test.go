package blogger

import (
	"reflect"
	"testing"

	"github.com/blogrank/blogrank/internal/csv"
)

func mapCSV(t *testing.T, text string) []*Record {
	t.Helper()
	return MapRows(csv.Tokenize(text))
}

func TestMapRows_TooFewLines(t *testing.T) {
	for _, input := range []string{"", "name,handle", "name,handle\n"} {
		if recs := mapCSV(t, input); len(recs) != 0 {
			t.Errorf("MapRows(%q) produced %d records, want 0", input, len(recs))
		}
	}
}

func TestMapRows_Basic(t *testing.T) {
	recs := mapCSV(t, "name,handle,bio\nAlice,@alice,travel blogger")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Name != "Alice" {
		t.Errorf("Name = %q, want %q", rec.Name, "Alice")
	}
	if rec.Handle != "@alice" {
		t.Errorf("Handle = %q, want %q", rec.Handle, "@alice")
	}
	if rec.Bio != "travel blogger" {
		t.Errorf("Bio = %q, want %q", rec.Bio, "travel blogger")
	}
}

func TestMapRows_HeaderSynonyms(t *testing.T) {
	recs := mapCSV(t, "full_name,username,description,sex,categories\nBob,bob1,hi,male,tech;cars")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.Name != "Bob" || rec.Handle != "bob1" || rec.Bio != "hi" || rec.Gender != "male" {
		t.Errorf("synonym mapping failed: %+v", rec)
	}
	if !reflect.DeepEqual(rec.Topics, []string{"tech", "cars"}) {
		t.Errorf("Topics = %v, want [tech cars]", rec.Topics)
	}
}

func TestMapRows_HeaderCaseAndWhitespace(t *testing.T) {
	recs := mapCSV(t, " Name , HANDLE \nAlice,@alice")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Name != "Alice" || recs[0].Handle != "@alice" {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestMapRows_DropsRowWithMissingNameOrHandle(t *testing.T) {
	// Empty name cell: other columns populated, row still vanishes.
	recs := mapCSV(t, "name,handle,bio\n,handle1,some bio")
	if len(recs) != 0 {
		t.Errorf("row without name produced %d records, want 0", len(recs))
	}

	recs = mapCSV(t, "name,handle\nAlice,")
	if len(recs) != 0 {
		t.Errorf("row without handle produced %d records, want 0", len(recs))
	}
}

func TestMapRows_SkipsShortRows(t *testing.T) {
	recs := mapCSV(t, "name,handle,bio\nAlice,@alice")

	if len(recs) != 0 {
		t.Errorf("short row produced %d records, want 0", len(recs))
	}
}

func TestMapRows_ExtraFieldsTolerated(t *testing.T) {
	recs := mapCSV(t, "name,handle\nAlice,@alice,extra,fields")

	if len(recs) != 1 {
		t.Errorf("row with extra fields produced %d records, want 1", len(recs))
	}
}

func TestMapRows_UnknownHeadersIgnored(t *testing.T) {
	recs := mapCSV(t, "name,handle,favorite_color\nAlice,@alice,blue")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
}

func TestMapRows_EmptyCellLeavesDefault(t *testing.T) {
	recs := mapCSV(t, "name,handle,bio,barter\nAlice,@alice,,")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].Bio != "" {
		t.Errorf("Bio = %q, want empty", recs[0].Bio)
	}
	if recs[0].BarterAvailable {
		t.Error("BarterAvailable = true for empty cell, want false")
	}
}

func TestMapRows_Booleans(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"Да", true},
		{"да", true},
		{"нет", false},
		{"false", false},
		{"0", false},
		{"anything", false},
	}
	for _, tt := range tests {
		recs := mapCSV(t, "name,handle,barter,mart\nAlice,@alice,"+tt.value+","+tt.value)
		if len(recs) != 1 {
			t.Fatalf("value %q: expected 1 record", tt.value)
		}
		if recs[0].BarterAvailable != tt.want {
			t.Errorf("barter %q = %v, want %v", tt.value, recs[0].BarterAvailable, tt.want)
		}
		if recs[0].MartAvailable != tt.want {
			t.Errorf("mart %q = %v, want %v", tt.value, recs[0].MartAvailable, tt.want)
		}
	}
}

func TestMapRows_Prices(t *testing.T) {
	recs := mapCSV(t, "name,handle,post_price,price_story\nAlice,@alice,150.50,oops")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]
	if rec.PostPrice == nil || *rec.PostPrice != 150.50 {
		t.Errorf("PostPrice = %v, want 150.50", rec.PostPrice)
	}
	// Non-numeric populated cell falls back to 0, never an error.
	if rec.StoryPrice == nil || *rec.StoryPrice != 0 {
		t.Errorf("StoryPrice = %v, want 0", rec.StoryPrice)
	}
}

func TestMapRows_AbsentPriceStaysNil(t *testing.T) {
	recs := mapCSV(t, "name,handle,post_price\nAlice,@alice,")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].PostPrice != nil {
		t.Errorf("PostPrice = %v, want nil", recs[0].PostPrice)
	}
}

func TestMapRows_PlatformMetrics(t *testing.T) {
	header := "name,handle,instagram_followers,ig_engagement,yt_followers,telegram_post_reach,tt_story_reach"
	recs := mapCSV(t, header+"\nAlice,@alice,12000,4.5,300,800,150")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	rec := recs[0]

	ig := rec.Metrics[PlatformInstagram]
	if ig == nil || ig.Followers != 12000 || ig.EngagementRate != 4.5 {
		t.Errorf("instagram metric = %+v", ig)
	}
	yt := rec.Metrics[PlatformYouTube]
	if yt == nil || yt.Followers != 300 {
		t.Errorf("youtube metric = %+v", yt)
	}
	tg := rec.Metrics[PlatformTelegram]
	if tg == nil || tg.PostReach != 800 {
		t.Errorf("telegram metric = %+v", tg)
	}
	tk := rec.Metrics[PlatformTikTok]
	if tk == nil || tk.StoryReach != 150 {
		t.Errorf("tiktok metric = %+v", tk)
	}
}

func TestMapRows_NumericFallback(t *testing.T) {
	recs := mapCSV(t, "name,handle,ig_followers\nAlice,@alice,lots")

	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	ig := recs[0].Metrics[PlatformInstagram]
	if ig == nil || ig.Followers != 0 {
		t.Errorf("instagram followers = %+v, want 0", ig)
	}
}

func TestMapRows_TopicsPreserveOrderAndDuplicates(t *testing.T) {
	recs := mapCSV(t, "name,handle,topics\nAlice,@alice,beauty; travel ;beauty;;food")

	want := []string{"beauty", "travel", "beauty", "food"}
	if !reflect.DeepEqual(recs[0].Topics, want) {
		t.Errorf("Topics = %v, want %v", recs[0].Topics, want)
	}
}

func TestNormalizeHandle(t *testing.T) {
	if got := NormalizeHandle("alice"); got != "@alice" {
		t.Errorf("NormalizeHandle(alice) = %q, want @alice", got)
	}
	if got := NormalizeHandle("@alice"); got != "@alice" {
		t.Errorf("NormalizeHandle(@alice) = %q, want @alice", got)
	}
}
